package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/neuraledu/neural-conquest/internal/handlers"
	"github.com/neuraledu/neural-conquest/internal/models"
	"github.com/neuraledu/neural-conquest/internal/store"
)

func main() {
	godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/conquest.db"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	if err := seedQuestions(db); err != nil {
		log.Printf("Question seeding skipped: %v", err)
	}

	saver := store.NewAutosaver(db)
	defer saver.Stop()

	ctx := &handlers.Context{
		Store:   store.NewSessionStore(),
		DB:      db,
		Saver:   saver,
		BaseURL: baseURL,
	}

	// Routes
	http.HandleFunc("/api/sessions", handlers.RateLimit(ctx.HandleCreateSession))
	http.HandleFunc("/api/sessions/", handlers.RateLimit(ctx.HandleSessionRoutes))
	http.HandleFunc("/api/join", handlers.RateLimit(ctx.HandleJoinByCode))
	http.HandleFunc("/events/", ctx.HandleEvents)

	log.Printf("Server starting on http://localhost:%s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

// seedQuestions loads data/questions.json into the bank on boot
func seedQuestions(db *store.DB) error {
	raw, err := os.ReadFile("data/questions.json")
	if err != nil {
		return fmt.Errorf("reading questions.json: %w", err)
	}
	var byTopic map[string][]models.Question
	if err := json.Unmarshal(raw, &byTopic); err != nil {
		return fmt.Errorf("parsing questions.json: %w", err)
	}

	total := 0
	for topic, questions := range byTopic {
		for i := range questions {
			if questions[i].ID == "" {
				questions[i].ID = fmt.Sprintf("%s_%d", topic, i)
			}
		}
		if err := db.InsertQuestions(topic, questions); err != nil {
			return fmt.Errorf("seeding topic %q: %w", topic, err)
		}
		total += len(questions)
	}
	log.Printf("Loaded %d questions across %d topics", total, len(byTopic))
	return nil
}
