package entity

// AccountContext identifies the authenticated AWS session a lesson runs under.
type AccountContext struct {
	Profile   string `json:"profile"`
	AccountID string `json:"account_id"`
	ARN       string `json:"arn"`
	UserID    string `json:"user_id"`
	Region    string `json:"region"`
}

// RegionInfo representa uma região AWS visível para a conta.
type RegionInfo struct {
	Name        string `json:"name"`
	OptInStatus string `json:"opt_in_status"`
}
