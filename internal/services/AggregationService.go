package services

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v4/disk"

	"doorbelld/internal/calendar"
	"doorbelld/internal/models"
	"doorbelld/internal/providers"
	"doorbelld/internal/storage"
	"doorbelld/internal/structures"
)

const bytesPerMegabyte = 1000 * 1000

type AggregationServiceInterface interface {
	HourlyHistogram(days []models.DayEvents) []models.HourlyCount
	AverageDailyMotion(days []models.DayEvents) (string, error)
	StorageUsage() (models.StorageUsage, error)
	CountMedia() (models.MediaCounts, error)
	SubscriptionSavings() (models.SubscriptionSavings, error)
	DiskUsage() (*models.DiskUsage, error)
	Dashboard() (*models.Dashboard, error)
	Resources() (*models.Resources, error)
}

type AggregationService struct {
	repo   storage.EventRepositoryInterface
	media  storage.MediaStoreInterface
	cal    *calendar.Calendar
	fee    float64
	logger providers.Logger
}

func NewAggregationService(conf *structures.Config, repo storage.EventRepositoryInterface, media storage.MediaStoreInterface, cal *calendar.Calendar, logger providers.Logger) AggregationServiceInterface {
	return &AggregationService{
		repo:   repo,
		media:  media,
		cal:    cal,
		fee:    conf.Subscription.FeePerMonth,
		logger: logger,
	}
}

// HourlyHistogram counts events per hour of day for each bucket. Hours
// without events stay null.
func (as *AggregationService) HourlyHistogram(days []models.DayEvents) []models.HourlyCount {
	result := make([]models.HourlyCount, 0, len(days))
	for _, d := range days {
		hc := models.NewHourlyCount(d.Day)
		for _, ev := range d.Events {
			if t, ok := as.cal.EventTime(ev.Id); ok {
				hc.Inc(t.Hour())
			}
		}
		result = append(result, hc)
	}
	return result
}

func (as *AggregationService) AverageDailyMotion(days []models.DayEvents) (string, error) {
	if len(days) == 0 {
		return "", models.ErrNoDays
	}
	total := 0
	for _, d := range days {
		total += len(d.Events)
	}
	return fmt.Sprintf("%.2f", float64(total)/float64(len(days))), nil
}

// StorageUsage splits the store size in megabytes between today's bucket
// and every other bucket. Each bucket is rounded before it is added.
func (as *AggregationService) StorageUsage() (models.StorageUsage, error) {
	var usage models.StorageUsage
	days, err := as.repo.ListDays()
	if err != nil {
		return usage, err
	}

	today := as.cal.Today()
	for _, day := range days {
		size, err := storage.DirSize(filepath.Join(as.media.Root(), day))
		if err != nil {
			return usage, err
		}
		mb := round2(float64(size) / bytesPerMegabyte)
		if day == today {
			usage.Today += mb
		} else {
			usage.Rest += mb
		}
	}
	usage.Today = round2(usage.Today)
	usage.Rest = round2(usage.Rest)
	return usage, nil
}

func (as *AggregationService) CountMedia() (models.MediaCounts, error) {
	return storage.CountMedia(as.media.Root())
}

// SubscriptionSavings estimates the cloud recording fees avoided since the
// oldest day bucket. Buckets with unparseable names are skipped.
func (as *AggregationService) SubscriptionSavings() (models.SubscriptionSavings, error) {
	savings := models.SubscriptionSavings{FeePerMonth: as.fee}
	days, err := as.repo.ListDays()
	if err != nil {
		return savings, err
	}

	var earliest time.Time
	for _, day := range days {
		t, ok := as.cal.ParseDay(day)
		if !ok {
			continue
		}
		if savings.EarliestDate == "" || t.Before(earliest) {
			savings.EarliestDate = day
			earliest = t
		}
	}
	if savings.EarliestDate == "" {
		return savings, nil
	}

	savings.MonthsPassed = as.cal.MonthsBetween(earliest, as.cal.Now())
	savings.MoneySaved = round2(float64(savings.MonthsPassed) * as.fee)
	return savings, nil
}

// DiskUsage reports the volume holding the store, or its nearest existing
// parent before the first capture.
func (as *AggregationService) DiskUsage() (*models.DiskUsage, error) {
	stat, err := disk.Usage(existingAncestor(as.media.Root()))
	if err != nil {
		return nil, err
	}
	return &models.DiskUsage{
		TotalBytes:  stat.Total,
		FreeBytes:   stat.Free,
		UsedPercent: round2(stat.UsedPercent),
	}, nil
}

func (as *AggregationService) Dashboard() (*models.Dashboard, error) {
	todayDays, err := as.repo.QueryByWindow(models.FilterToday, true)
	if err != nil {
		return nil, err
	}
	monthDays, err := as.repo.QueryByWindow(models.FilterMonth, false)
	if err != nil {
		return nil, err
	}
	usage, err := as.StorageUsage()
	if err != nil {
		return nil, err
	}

	dashboard := &models.Dashboard{
		TodayEvents:     as.repo.Flatten(todayDays, models.OrderDesc),
		HourlyHistogram: as.HourlyHistogram(monthDays),
		StorageUsage:    usage,
	}
	avg, err := as.AverageDailyMotion(monthDays)
	switch {
	case err == nil:
		dashboard.AverageDailyMotion = &avg
	case !errors.Is(err, models.ErrNoDays):
		return nil, err
	}
	return dashboard, nil
}

func (as *AggregationService) Resources() (*models.Resources, error) {
	usage, err := as.StorageUsage()
	if err != nil {
		return nil, err
	}
	counts, err := as.CountMedia()
	if err != nil {
		return nil, err
	}
	savings, err := as.SubscriptionSavings()
	if err != nil {
		return nil, err
	}

	resources := &models.Resources{
		StorageUsage:        usage,
		MediaCounts:         counts,
		SubscriptionSavings: savings,
	}
	if du, err := as.DiskUsage(); err != nil {
		as.logger.Warnf(providers.TypeGet, "Disk usage unavailable: %s", err)
	} else {
		resources.Disk = du
	}
	return resources, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func existingAncestor(path string) string {
	p := filepath.Clean(path)
	for {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return p
		}
		p = parent
	}
}
