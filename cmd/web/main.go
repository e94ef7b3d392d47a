package main

import (
	"log"
	"net/http"

	"github.com/ottoh/crazyeights"
	"github.com/ottoh/crazyeights/server"
)

func main() {
	config, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	store := crazyeights.NewInMemoryGameStore()
	s := server.NewServer(store, config)

	log.Printf("Listening on %s...", config.Addr)
	log.Fatal(http.ListenAndServe(config.Addr, s))
}
