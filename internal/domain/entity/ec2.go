package entity

// EC2Summary conta instâncias por estado ("running", "stopped", ...).
type EC2Summary map[string]int

// Total returns the number of instances across all states.
func (s EC2Summary) Total() int {
	var n int
	for _, count := range s {
		n += count
	}
	return n
}

// StoppedEC2Instances lista IDs de instâncias paradas por região.
type StoppedEC2Instances map[string][]string

// Count returns the number of stopped instances across all regions.
func (s StoppedEC2Instances) Count() int {
	var n int
	for _, ids := range s {
		n += len(ids)
	}
	return n
}

// UnusedVolumes lista volumes EBS disponíveis (sem attach) por região.
type UnusedVolumes map[string][]string

// UnusedEIPs lista Elastic IPs não associados por região.
type UnusedEIPs map[string][]string

// UntaggedResources agrupa recursos sem tags por serviço e depois por região.
type UntaggedResources map[string]map[string][]string

// Count returns the number of untagged resources across services and regions.
func (u UntaggedResources) Count() int {
	var n int
	for _, regions := range u {
		for _, ids := range regions {
			n += len(ids)
		}
	}
	return n
}

type IdleLoadBalancers map[string][]string
