package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/Adityasingh-8858/warm-transfer/internal/adapters/http"
	"github.com/Adityasingh-8858/warm-transfer/internal/adapters/livekit"
	"github.com/Adityasingh-8858/warm-transfer/internal/adapters/llm"
	firestorestore "github.com/Adityasingh-8858/warm-transfer/internal/adapters/storage/firestore"
	memstore "github.com/Adityasingh-8858/warm-transfer/internal/adapters/storage/memory"
	sqlitestore "github.com/Adityasingh-8858/warm-transfer/internal/adapters/storage/sqlite"
	"github.com/Adityasingh-8858/warm-transfer/internal/adapters/tts"
	"github.com/Adityasingh-8858/warm-transfer/internal/app/agent"
	"github.com/Adityasingh-8858/warm-transfer/internal/app/transfer"
	"github.com/Adityasingh-8858/warm-transfer/internal/config"
	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Gateway: control plane + synthetic-participant publisher.
	gateway, err := livekit.NewGateway(cfg.LiveKitURL, cfg.LiveKitAPIKey, cfg.LiveKitAPISecret)
	if err != nil {
		log.Fatalf("error initializing LiveKit gateway: %v", err)
	}
	publisher, err := livekit.NewPublisher(cfg.LiveKitURL, cfg.LiveKitAPIKey, cfg.LiveKitAPISecret)
	if err != nil {
		log.Fatalf("error initializing LiveKit publisher: %v", err)
	}

	// Summary generation: Gemini or deterministic mock.
	var summaryClient domain.SummaryClient
	if cfg.UseMockSummary {
		log.Println("[LLM] Using MOCK summary client")
		summaryClient = llm.NewMockClient()
	} else {
		log.Println("[LLM] Using Gemini summary client")
		summaryClient, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.SummaryModel)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	}

	// Speech synthesis.
	var synth domain.SpeechSynthesizer
	if cfg.UseMockTTS {
		log.Println("[TTS] Using MOCK synthesizer")
		synth = tts.NewMockSynthesizer()
	} else {
		log.Println("[TTS] Using live synthesizer")
		synth, err = tts.NewClient(cfg.TTSAPIKey, cfg.TTSModel)
		if err != nil {
			log.Fatalf("error initializing TTS client: %v", err)
		}
	}

	// Storage: sqlite (durable default), memory or Firestore.
	var store domain.TransferStore
	switch cfg.StorageBackend {
	case "memory":
		log.Println("[STORE] Using in-memory storage")
		store = memstore.NewTransferStore()

	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		store = fsStore

	default:
		log.Printf("[STORE] Using SQLite storage at %s", cfg.DBPath)
		sqlStore, err := sqlitestore.Open(cfg.DBPath)
		if err != nil {
			log.Fatalf("error initializing SQLite store: %v", err)
		}
		defer sqlStore.Close()
		store = sqlStore
	}

	// Core services.
	transferSvc := transfer.NewService(gateway, summaryClient, store)
	agents := agent.NewManager(agent.DefaultFactories(agent.Tiers{
		EnableVoiceAI: cfg.EnableVoiceAI,
		ForceMock:     cfg.EnableAgentMock,
		Publisher:     publisher,
		Synth:         synth,
		LiveSynth:     !cfg.UseMockTTS,
		LLM:           summaryClient,
		LiveLLM:       !cfg.UseMockSummary,
	}))

	handler := httpadapter.NewServer(transferSvc, agents, gateway, synth)

	addr := cfg.Host + ":" + cfg.Port
	log.Println("Warm Transfer API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
