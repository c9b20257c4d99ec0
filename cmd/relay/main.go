package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/slipstream-mp/relay"
)

func main() {
	port := flag.Uint("port", 7373, "Relay port")
	tickRate := flag.Int("tickrate", 20, "Relay tick rate (updates per second)")
	name := flag.String("name", "Slipstream Relay", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	flag.Parse()

	server := relay.NewServer(*tickRate, *name, *version)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down relay...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting relay %q on port %d (tick rate: %d/s, version: %s)",
		*name, *port, *tickRate, *version)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Relay error: %v", err)
	}
}
