package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"location-consent/clients"
	"location-consent/handlers"
	"location-consent/services"
	"location-consent/storage"
)

const defaultResultsDir = "/data/location_results"

func main() {
	// Twilio credentials are required; refuse to start without them.
	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_PHONE_NUMBER")
	if accountSID == "" {
		log.Fatal("❌ TWILIO_ACCOUNT_SID environment variable must be set!")
	}
	if authToken == "" {
		log.Fatal("❌ TWILIO_AUTH_TOKEN environment variable must be set!")
	}
	if fromNumber == "" {
		log.Fatal("❌ TWILIO_PHONE_NUMBER environment variable must be set!")
	}

	useHTTPS := os.Getenv("USE_HTTPS") == "true"

	port := os.Getenv("PORT")
	if port == "" {
		if useHTTPS {
			port = "8443"
		} else {
			port = "8080"
		}
	}

	// Public origin embedded in consent links sent over SMS.
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		scheme := "http"
		if useHTTPS {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://localhost:%s", scheme, port)
		log.Printf("⚠️  BASE_URL not set, consent links will use %s", baseURL)
	}

	resultsDir := os.Getenv("RESULTS_DIR")
	if resultsDir == "" {
		resultsDir = defaultResultsDir
	}

	log.Printf("✅ Location consent service starting...")

	statuses := newStatusRepository()
	results := storage.NewFileResultRepository(resultsDir)
	twilioClient := clients.NewTwilioClient(accountSID, authToken, fromNumber)
	consentService := services.NewConsentService(statuses, results, twilioClient, baseURL)
	consentHandlers := handlers.NewConsentHandlers(consentService)

	// Routes
	http.HandleFunc("/", loggingHandler(consentHandlers.HandleIndex))
	http.HandleFunc("/request-location", loggingHandler(consentHandlers.HandleRequestLocation))
	http.HandleFunc("/consent/", loggingHandler(consentHandlers.HandleConsentPage))
	http.HandleFunc("/submit-location", loggingHandler(consentHandlers.HandleSubmitLocation))
	http.HandleFunc("/get-location/", loggingHandler(consentHandlers.HandleGetLocation))
	http.HandleFunc("/api/health", handlers.HandleHealth)

	log.Printf("💾 Results directory: %s", resultsDir)

	if useHTTPS {
		// Check for certificate files or generate self-signed ones
		certFile := os.Getenv("CERT_FILE")
		keyFile := os.Getenv("KEY_FILE")

		if certFile == "" || keyFile == "" {
			log.Printf("📜 No certificates provided, generating self-signed certificate...")
			certFile = "server.crt"
			keyFile = "server.key"

			if err := generateSelfSignedCert(certFile, keyFile); err != nil {
				log.Fatalf("❌ Failed to generate certificate: %v", err)
			}
			log.Printf("✅ Self-signed certificate generated")
		}

		log.Printf("🌍 Server running on https://:%s", port)
		log.Fatal(http.ListenAndServeTLS(":"+port, certFile, keyFile, nil))
	} else {
		log.Printf("⚠️  Running in HTTP mode - browser geolocation only works on secure origins!")
		log.Printf("💡 Set USE_HTTPS=true to enable HTTPS")
		log.Printf("🌍 Server running on http://:%s", port)
		log.Fatal(http.ListenAndServe(":"+port, nil))
	}
}

// newStatusRepository picks the status backend: DynamoDB when
// STATUS_TABLE_NAME is set and AWS config loads, in-memory otherwise.
func newStatusRepository() storage.StatusRepository {
	tableName := os.Getenv("STATUS_TABLE_NAME")
	if tableName == "" {
		log.Printf("🗄️  Using in-memory status store (state is lost on restart)")
		return storage.NewMemoryStatusRepository()
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config, falling back to in-memory status store: %v", err)
		return storage.NewMemoryStatusRepository()
	}

	log.Printf("🗄️  Using DynamoDB status store: %s", tableName)
	return storage.NewDynamoDBStatusRepository(dynamodb.NewFromConfig(cfg), tableName)
}
