package main

import (
	"context"
	"log"
	"time"

	"campus-jobs/internal/app"

	"go.uber.org/fx"
)

func main() {
	a := fx.New(app.Module, fx.NopLogger)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	sig := <-a.Wait()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := a.Stop(stopCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	if sig.ExitCode != 0 {
		log.Fatalf("server exited with code %d", sig.ExitCode)
	}
}
