package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/hackathonspt/attendee-hq/cmd/app"
)

// @contact.name   hackathons.pt
// @contact.url    https://hackathons.pt
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
