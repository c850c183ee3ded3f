package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort string `yaml:"APP_PORT"`

	// Auth configuration
	AuthPasswordHash string `yaml:"AUTH_PASSWORD_HASH"`
	JWTSecret        string `yaml:"JWT_SECRET"`

	// AWS configuration
	AWSRegion    string `yaml:"AWS_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// DynamoDB tables
	CoffeeDatesTable string `yaml:"COFFEE_DATES_TABLE"`
	PhotosTable      string `yaml:"PHOTOS_TABLE"`

	// S3 configuration
	AWSS3Bucket string `yaml:"AWS_S3_BUCKET"`

	// Google Maps configuration
	GoogleMapsAPIKey string `yaml:"GOOGLE_MAPS_API_KEY"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	// Expose secrets through the environment as well
	os.Setenv("JWT_SECRET", config.JWTSecret)
	os.Setenv("AWS_REGION", config.AWSRegion)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("GOOGLE_MAPS_API_KEY", config.GoogleMapsAPIKey)
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "AUTH_PASSWORD_HASH":
		return config.AuthPasswordHash
	case "JWT_SECRET":
		return config.JWTSecret
	case "AWS_REGION":
		return config.AWSRegion
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "COFFEE_DATES_TABLE":
		return config.CoffeeDatesTable
	case "PHOTOS_TABLE":
		return config.PhotosTable
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "GOOGLE_MAPS_API_KEY":
		return config.GoogleMapsAPIKey
	default:
		return ""
	}
}
