package main

import (
	"fmt"

	"github.com/opengram/realtime-delivery-service/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		fmt.Println(err.Error())
		return
	}
}
