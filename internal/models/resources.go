package models

type MediaCounts struct {
	Images int `json:"images"`
	Videos int `json:"videos"`
}

func (m MediaCounts) Add(o MediaCounts) MediaCounts {
	return MediaCounts{Images: m.Images + o.Images, Videos: m.Videos + o.Videos}
}

type SubscriptionSavings struct {
	EarliestDate string  `json:"earliestDate"`
	MonthsPassed int64   `json:"monthsPassed"`
	FeePerMonth  float64 `json:"feePerMonth"`
	MoneySaved   float64 `json:"moneySaved"`
}

type DiskUsage struct {
	TotalBytes  uint64  `json:"totalBytes"`
	FreeBytes   uint64  `json:"freeBytes"`
	UsedPercent float64 `json:"usedPercent"`
}

type Resources struct {
	StorageUsage        StorageUsage        `json:"storageSpaceUsed"`
	MediaCounts         MediaCounts         `json:"mediaDetails"`
	SubscriptionSavings SubscriptionSavings `json:"financeDetails"`
	Disk                *DiskUsage          `json:"disk,omitempty"`
}
