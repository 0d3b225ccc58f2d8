package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEC2SummaryTotal(t *testing.T) {
	tests := []struct {
		name    string
		summary EC2Summary
		want    int
	}{
		{name: "empty", summary: EC2Summary{}, want: 0},
		{name: "single state", summary: EC2Summary{"running": 3}, want: 3},
		{name: "mixed states", summary: EC2Summary{"running": 3, "stopped": 2, "terminated": 1}, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.summary.Total())
		})
	}
}

func TestStoppedEC2InstancesCount(t *testing.T) {
	stopped := StoppedEC2Instances{
		"us-east-1": {"i-1", "i-2"},
		"eu-west-1": {"i-3"},
	}
	assert.Equal(t, 3, stopped.Count())
	assert.Zero(t, StoppedEC2Instances{}.Count())
}

func TestUntaggedResourcesCount(t *testing.T) {
	untagged := UntaggedResources{
		"EC2": {
			"us-east-1": {"i-1", "i-2"},
			"eu-west-1": {"i-3"},
		},
		"RDS": {
			"us-east-1": {"db-1"},
		},
	}
	assert.Equal(t, 4, untagged.Count())
	assert.Zero(t, UntaggedResources{}.Count())
}

func TestCostReportTotalServiceCost(t *testing.T) {
	report := CostReport{
		ServiceCosts: []ServiceCost{
			{ServiceName: "Amazon EC2", Cost: 120.5},
			{ServiceName: "Amazon S3", Cost: 59.75},
		},
	}
	assert.InDelta(t, 180.25, report.TotalServiceCost(), 0.001)
	assert.Zero(t, CostReport{}.TotalServiceCost())
}

func TestLessonResultFailedCount(t *testing.T) {
	result := LessonResult{
		Concepts: []ConceptResult{
			{Number: 1, Status: ConceptDone},
			{Number: 2, Status: ConceptFailed, Error: "boom"},
			{Number: 3, Status: ConceptSkipped},
			{Number: 4, Status: ConceptFailed, Error: "boom again"},
		},
	}
	assert.Equal(t, 2, result.FailedCount())
	assert.Zero(t, LessonResult{}.FailedCount())
}

func TestCloudWatchLogGroupNeverExpires(t *testing.T) {
	forever := CloudWatchLogGroupInfo{GroupName: "/aws/lambda/fn", RetentionDays: 0}
	assert.True(t, forever.NeverExpires())

	limited := CloudWatchLogGroupInfo{GroupName: "/aws/lambda/fn", RetentionDays: 30}
	assert.False(t, limited.NeverExpires())
}

func TestResourceSummaryTagCount(t *testing.T) {
	res := ResourceSummary{Tags: map[string]string{"Name": "web-01", "team": "payments"}}
	assert.Equal(t, 2, res.TagCount())
	assert.Zero(t, ResourceSummary{}.TagCount())
}

func TestDeploymentErrorMessage(t *testing.T) {
	err := &DeploymentError{DeploymentID: "d-42", Target: "api", Reason: "change set drift detected"}
	assert.Equal(t, "deployment d-42 to api failed: change set drift detected", err.Error())
}
