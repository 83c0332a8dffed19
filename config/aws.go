package config

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	dynamoClient  *dynamodb.Client
	presignClient *s3.PresignClient
)

// InitAWS builds the shared AWS clients once during boot and keeps them for
// the process lifetime. Static credentials are used when provided, otherwise
// the default chain (env, shared config, instance role) applies.
func InitAWS() (*dynamodb.Client, *s3.PresignClient) {
	if dynamoClient != nil && presignClient != nil {
		return dynamoClient, presignClient
	}

	c := Get()
	if c.DynamoTable == "" || c.S3Bucket == "" {
		log.Fatal("DYNAMO_TABLE and BUCKET must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.AWSRegion),
	}
	if c.AWSAccessKeyID != "" && c.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AWSAccessKeyID, c.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Fatalf("failed to load AWS config: %v", err)
	}

	dynamoClient = dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if c.AWSEndpoint != "" {
			o.BaseEndpoint = aws.String(c.AWSEndpoint)
		}
	})

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.AWSEndpoint != "" {
			o.BaseEndpoint = aws.String(c.AWSEndpoint)
			o.UsePathStyle = true
		}
	})
	presignClient = s3.NewPresignClient(s3Client)

	return dynamoClient, presignClient
}

// Dynamo provides access to the initialized DynamoDB client.
func Dynamo() *dynamodb.Client {
	if dynamoClient == nil {
		log.Fatal("AWS clients not initialized, call InitAWS first")
	}
	return dynamoClient
}

// Presigner provides access to the initialized S3 presign client.
func Presigner() *s3.PresignClient {
	if presignClient == nil {
		log.Fatal("AWS clients not initialized, call InitAWS first")
	}
	return presignClient
}
