package entity

// CloudWatchLogGroupInfo descreve um log group: retenção configurada e volume armazenado.
type CloudWatchLogGroupInfo struct {
	GroupName     string `json:"group_name"`
	Region        string `json:"region"`
	RetentionDays int    `json:"retention_days"` // 0 = sem expiração
	StoredBytes   int64  `json:"stored_bytes"`
}

// NeverExpires reports whether the log group keeps data forever.
func (g CloudWatchLogGroupInfo) NeverExpires() bool {
	return g.RetentionDays == 0
}
