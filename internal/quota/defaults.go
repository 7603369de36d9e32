package quota

import "time"

const periodLength = 7 * 24 * time.Hour

func defaultQuota() Quota {
	return Quota{
		Plan:     "Starter",
		Limit:    10,
		Used:     0,
		ResetsAt: time.Now().UTC().Add(periodLength),
	}
}
