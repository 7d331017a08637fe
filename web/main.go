package main

import (
	"flag"
	"log"

	"github.com/lightlab/go-2d-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8090, "Port to run the web server on")
	flag.Parse()

	srv := server.NewServer(*port)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
