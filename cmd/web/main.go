package main

import "alerthub_backend/internal/app"

func main() {
	app.Run()
}
