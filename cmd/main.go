package main

import (
	"riviera-booking/cmd/bootstrap"

	"go.uber.org/fx"
)

// @title Riviera Booking API
// @version 1.0
// @description Hotel room and restaurant table reservation service.
// @BasePath /api/v1
func main() {
	fx.New(bootstrap.App()).Run()
}
