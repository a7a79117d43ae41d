package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

const (
	scheduleKeyPrefix = "schedule:result:"

	defaultScheduleTTL = 24 * time.Hour
)

func scheduleKey(projectID domain.ProjectID) string {
	return scheduleKeyPrefix + strconv.FormatInt(int64(projectID), 10)
}

type scheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScheduleCache stores the last computed schedule per project as JSON.
func NewScheduleCache(client *redis.Client, ttl time.Duration) domain.ScheduleCache {
	if ttl <= 0 {
		ttl = defaultScheduleTTL
	}
	return &scheduleCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *scheduleCache) SaveSchedule(ctx context.Context, schedule *domain.ComputedSchedule) error {
	if schedule == nil {
		return ErrInvalidScheduleData
	}

	data, err := json.Marshal(schedule)
	if err != nil {
		return ErrInvalidScheduleData
	}

	return c.client.Set(ctx, scheduleKey(schedule.ProjectID), data, c.ttl).Err()
}

func (c *scheduleCache) GetSchedule(ctx context.Context, projectID domain.ProjectID) (*domain.ComputedSchedule, error) {
	data, err := c.client.Get(ctx, scheduleKey(projectID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, err
	}

	var schedule domain.ComputedSchedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil, ErrInvalidScheduleData
	}

	return &schedule, nil
}

func (c *scheduleCache) DeleteSchedule(ctx context.Context, projectID domain.ProjectID) error {
	return c.client.Del(ctx, scheduleKey(projectID)).Err()
}
