package entity

import "time"

// GitStatus is the parsed output of `git status --porcelain=v1 -b`.
type GitStatus struct {
	Branch    string `json:"branch"`
	Upstream  string `json:"upstream,omitempty"`
	Ahead     int    `json:"ahead"`
	Behind    int    `json:"behind"`
	Staged    int    `json:"staged"`
	Modified  int    `json:"modified"`
	Untracked int    `json:"untracked"`
}

// Clean reports whether the working tree has nothing to commit.
func (s GitStatus) Clean() bool {
	return s.Staged == 0 && s.Modified == 0 && s.Untracked == 0
}

// GitCommit é uma entrada do histórico retornada por `git log`.
type GitCommit struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	When    time.Time `json:"when"`
	Subject string    `json:"subject"`
}

// ShortHash returns the abbreviated commit hash used in listings.
func (c GitCommit) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}
