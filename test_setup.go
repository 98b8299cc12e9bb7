package main

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	ctx := context.Background()

	// Test Firebase (Auth + Realtime Database)
	fmt.Println("Testing Firebase connection...")
	credsPath := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	dbURL := os.Getenv("FIREBASE_DATABASE_URL")
	opt := option.WithCredentialsFile(credsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: dbURL}, opt)
	if err != nil {
		log.Fatal("Firebase init failed:", err)
	}
	if _, err := app.Auth(ctx); err != nil {
		log.Fatal("Firebase Auth failed:", err)
	}
	dbClient, err := app.Database(ctx)
	if err != nil {
		log.Fatal("Firebase Database failed:", err)
	}
	var probe interface{}
	if err := dbClient.NewRef(".info/connected").Get(ctx, &probe); err != nil {
		log.Fatal("Realtime Database read failed:", err)
	}
	fmt.Println("✅ Firebase connected successfully!")

	// Test Cloudinary
	fmt.Println("\nTesting Cloudinary connection...")
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Fatal("Cloudinary credentials missing in .env")
	}

	cldURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)
	cld, err := cloudinary.NewFromURL(cldURL)
	if err != nil {
		log.Fatal("Cloudinary initialization failed:", err)
	}

	if cld.Config.Cloud.CloudName != cloudName {
		log.Fatal("Cloudinary config mismatch")
	}
	fmt.Println("✅ Cloudinary connected successfully!")

	fmt.Println("\n🎉 All systems ready! Start the API with: go run cmd/api/main.go")
	fmt.Println("\nCloudinary Details:")
	fmt.Printf("  Cloud Name: %s\n", cloudName)
	fmt.Printf("  Upload Folder: %s\n", os.Getenv("CLOUDINARY_FOLDER"))
}
