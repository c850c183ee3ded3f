package config

import (
	"context"
	"log"

	"coffee-chronicles/internal/utils"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ConnectAWS builds the DynamoDB and S3 clients from the loaded configuration.
func ConnectAWS() (*dynamodb.Client, *s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(utils.GetConfig("AWS_REGION")),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Fatalf("AWS configuration failed: %v", err)
		return nil, nil, err
	}

	return dynamodb.NewFromConfig(cfg), s3.NewFromConfig(cfg), nil
}
