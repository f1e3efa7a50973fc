package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/yuhanzhou/foxden/internal/config"
	"github.com/yuhanzhou/foxden/internal/model/persona"
	"github.com/yuhanzhou/foxden/internal/service/ai"
	chatservice "github.com/yuhanzhou/foxden/internal/service/chat"
	"github.com/yuhanzhou/foxden/internal/service/history"
	"github.com/yuhanzhou/foxden/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	// A missing credential must be reported before any window is shown.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	companion := persona.Resolve(personaStore, cfg.Chat.PersonaID)

	aiService, err := ai.NewService(ctx, companion, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}

	historyStore, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Fatalf("failed to open history store: %v", err)
	}
	defer historyStore.Close()

	controller := chatservice.NewController(aiService, historyStore, cfg.Chat.ContextLimit)

	// Stray log output would corrupt the terminal display; keep it in a file.
	if logFile, logErr := tea.LogToFile("foxden.log", "foxden"); logErr == nil {
		defer logFile.Close()
	}

	model := tui.New(ctx, controller, historyStore, companion, aiService.StreamingEnabled())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Fatalf("ui error: %v", err)
	}
}
