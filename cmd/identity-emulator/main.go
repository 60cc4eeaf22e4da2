package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gatehouseauth/gatehouse/internal/emulator"
)

// The emulator mounts the accounts surface under the same path prefix
// the managed endpoint uses, so pointing GATEHOUSE_IDENTITY_URL at
// http://localhost:9099/identitytoolkit.googleapis.com just works.
const pathPrefix = "/identitytoolkit.googleapis.com"

func main() {
	port := 9099
	if v := os.Getenv("EMULATOR_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid EMULATOR_PORT %q: %v", v, err)
		}
		port = p
	}

	mux := http.NewServeMux()
	mux.Handle(pathPrefix+"/", http.StripPrefix(pathPrefix, emulator.New().Handler()))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}

	log.Printf("identity emulator listening on :%d", port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("emulator error: %v", err)
	}
}
