package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"

	"github.com/BattleKash/battlekash-admin-backend/internal/models"
	mongorepo "github.com/BattleKash/battlekash-admin-backend/internal/repositories/mongodb"
	"github.com/BattleKash/battlekash-admin-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Imports tournament registrations from a CSV export.
// Expected columns: tournamentId, userId, displayName, teamName (optional).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "battlekash"
	}

	if len(os.Args) < 2 {
		log.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	client, err := mongodb.NewClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	imported, err := importRegistrations(client.Database(dbName), csvFilePath)
	if err != nil {
		log.Fatalf("Failed to import registrations: %v", err)
	}
	log.Printf("Imported %d registrations", imported)
}

func importRegistrations(db *mongo.Database, csvFilePath string) (int, error) {
	file, err := os.Open(csvFilePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse CSV file: %v", err)
	}
	if len(records) < 2 {
		return 0, fmt.Errorf("CSV file has no data rows")
	}

	registrationRepo := mongorepo.NewRegistrationRepository(db)

	imported := 0
	// Skip the header row.
	for i, record := range records[1:] {
		if len(record) < 3 {
			log.Printf("Skipping row %d: expected at least 3 columns, got %d", i+2, len(record))
			continue
		}

		tournamentID, err := primitive.ObjectIDFromHex(record[0])
		if err != nil {
			log.Printf("Skipping row %d: invalid tournament ID %q", i+2, record[0])
			continue
		}
		userID, err := primitive.ObjectIDFromHex(record[1])
		if err != nil {
			log.Printf("Skipping row %d: invalid user ID %q", i+2, record[1])
			continue
		}

		registration := &models.Registration{
			TournamentID: tournamentID,
			UserID:       userID,
			DisplayName:  record[2],
		}
		if len(record) > 3 {
			registration.TeamName = record[3]
		}

		if err := registrationRepo.Create(context.Background(), registration); err != nil {
			log.Printf("Failed to import row %d: %v", i+2, err)
			continue
		}
		imported++
	}

	return imported, nil
}
