package main

import (
	"log"
	"net/http"

	"github.com/pineiras-maker/mytasks/internal/config"
	"github.com/pineiras-maker/mytasks/internal/serverapp"
)

func main() {
	cfg, err := config.LoadOrDefault("mytasks.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		UseDiskStatic: serverapp.UseDiskStaticByEnv(),
		Logger:        log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
