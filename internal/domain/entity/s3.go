package entity

import "time"

// BucketSummary representa um bucket S3 com a configuração que interessa
// para a lição de recursos: lifecycle e versionamento.
type BucketSummary struct {
	Name              string    `json:"name"`
	Region            string    `json:"region"`
	CreatedAt         time.Time `json:"created_at"`
	HasLifecycle      bool      `json:"has_lifecycle"`
	LifecycleRules    int       `json:"lifecycle_rules"`
	VersioningEnabled bool      `json:"versioning_enabled"`
}
