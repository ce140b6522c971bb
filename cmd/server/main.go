package main

import "payrollpro/internal/app/server"

func main() {
	server.Run()
}
