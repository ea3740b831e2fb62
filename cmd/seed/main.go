// Package main provides a tool to seed the database with a starter deck.
//
// Useful for trying the app without typing cards in by hand.
//
// Usage:
//
//	DB_PATH=~/StudyDeck/data/db go run ./cmd/seed
//	DB_PATH=~/StudyDeck/data/db go run ./cmd/seed --wipe  # Delete existing cards first
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/studydeckapp/studydeck-server/internal/domain"
	"github.com/studydeckapp/studydeck-server/internal/store"
)

var wipe = flag.Bool("wipe", false, "Delete existing cards before seeding")

func starterDeck() []*domain.Flashcard {
	return []*domain.Flashcard{
		{
			Question:   "Which article of the constitution deals with the Right to Equality?",
			Answer:     "Article 14",
			Subject:    "Polity",
			Tags:       []string{"constitution", "fundamental-rights"},
			Difficulty: domain.DifficultyEasy,
		},
		{
			Question:   "Who was the founder of the Mauryan Empire?",
			Answer:     "Chandragupta Maurya, in 321 BCE",
			Subject:    "History",
			Tags:       []string{"ancient", "empires"},
			Difficulty: domain.DifficultyEasy,
		},
		{
			Question:   "Which latitude passes through the middle of India?",
			Answer:     "The Tropic of Cancer (23.5 degrees N)",
			Subject:    "Geography",
			Tags:       []string{"physical"},
			Difficulty: domain.DifficultyEasy,
		},
		{
			Question:   "What is repo rate?",
			Answer:     "The rate at which the central bank lends short-term funds to commercial banks",
			Subject:    "Economy",
			Tags:       []string{"monetary-policy", "banking"},
			Difficulty: domain.DifficultyMedium,
		},
		{
			Question:   "What is the SI unit of electric current?",
			Answer:     "The ampere",
			Subject:    "General Science",
			Tags:       []string{"physics", "units"},
			Difficulty: domain.DifficultyEasy,
		},
		{
			Question:   "What does the Montreal Protocol regulate?",
			Answer:     "Substances that deplete the ozone layer",
			Subject:    "Environment",
			Tags:       []string{"treaties", "ozone"},
			Difficulty: domain.DifficultyMedium,
		},
		{
			Question:   "Choose the correct synonym of 'ephemeral'",
			Answer:     "Short-lived",
			Subject:    "English",
			Tags:       []string{"vocabulary"},
			Difficulty: domain.DifficultyMedium,
		},
		{
			Question:   "A train 120 m long crosses a pole in 6 seconds. What is its speed?",
			Answer:     "72 km/h",
			Subject:    "Quantitative Aptitude",
			Tags:       []string{"speed-distance-time"},
			Difficulty: domain.DifficultyHard,
		},
		{
			Question:   "If CAT is coded as DBU, how is DOG coded?",
			Answer:     "EPH",
			Subject:    "Reasoning",
			Tags:       []string{"coding-decoding"},
			Difficulty: domain.DifficultyEasy,
		},
		{
			Question:   "Which planet has the most moons in the solar system?",
			Answer:     "Saturn",
			Subject:    "General Knowledge",
			Tags:       []string{"space"},
			Difficulty: domain.DifficultyEasy,
		},
	}
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/StudyDeck/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if *wipe {
		existing, err := s.ListCards(ctx)
		if err != nil {
			log.Fatalf("Failed to list cards: %v", err)
		}
		for _, card := range existing {
			if err := s.DeleteCard(ctx, card.ID); err != nil {
				log.Fatalf("Failed to delete card %s: %v", card.ID, err)
			}
		}
		fmt.Printf("Deleted %d existing cards\n", len(existing))
	}

	for _, card := range starterDeck() {
		card.Tags = domain.NormalizeTags(card.Tags)
		if err := s.CreateCard(ctx, card); err != nil {
			log.Fatalf("Failed to create card %q: %v", card.Question, err)
		}
		fmt.Printf("  created %s [%s] %s\n", card.ID, card.Subject, card.Question)
	}

	fmt.Printf("\nSeeded %d cards\n", len(starterDeck()))
}
