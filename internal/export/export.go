// Package export uploads JSON snapshots of the counter store to an
// S3-compatible object store after successful sync passes.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/slackpulse/internal/aggregate"
	"github.com/dmitrijs2005/slackpulse/internal/config"
	"github.com/dmitrijs2005/slackpulse/internal/logging"
	"github.com/dmitrijs2005/slackpulse/internal/models"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/counts"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/users"
)

// objectPutter is the slice of the S3 client the exporter needs.
// *s3.Client satisfies it.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// snapshot is the uploaded document.
type snapshot struct {
	ExportedAt time.Time           `json:"exported_at"`
	Users      []models.User       `json:"users"`
	Counts     []models.DailyCount `json:"counts"`
}

// Exporter serializes the current directory and counter window and uploads
// it under snapshots/<timestamp>.json.
type Exporter struct {
	cfg    *config.Config
	logger logging.Logger
	users  users.Repository
	counts counts.Repository
	client objectPutter
	now    func() time.Time
}

// NewExporter builds an S3 client from the static credentials in cfg.
// A non-empty S3BaseEndpoint points it at a MinIO-style deployment.
func NewExporter(cfg *config.Config, logger logging.Logger,
	usersRepo users.Repository, countsRepo counts.Repository) (*Exporter, error) {

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &Exporter{
		cfg:    cfg,
		logger: logger,
		users:  usersRepo,
		counts: countsRepo,
		client: client,
		now:    time.Now,
	}, nil
}

// Export uploads one snapshot covering the configured history window and
// returns the object key.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	now := e.now().UTC()

	allUsers, err := e.users.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load users: %w", err)
	}

	dates := aggregate.LastNDays(e.cfg.HistoryDays, now)
	byUser, err := e.counts.QueryRange(ctx, dates[0], dates[len(dates)-1])
	if err != nil {
		return "", fmt.Errorf("failed to load counts: %w", err)
	}

	snap := snapshot{ExportedAt: now, Users: allUsers}
	for _, u := range allUsers {
		for _, date := range dates {
			if c, ok := byUser[u.ID][date]; ok {
				snap.Counts = append(snap.Counts, models.DailyCount{UserID: u.ID, Date: date, Count: c})
			}
		}
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := fmt.Sprintf("snapshots/%s.json", now.Format(time.RFC3339))
	contentType := "application/json"

	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &e.cfg.S3Bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	return key, nil
}
