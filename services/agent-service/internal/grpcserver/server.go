//go:build protogen

package grpcserver

import (
	"context"
	"strconv"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/nathan-pruitt/openhouse/libs/config"
	"github.com/nathan-pruitt/openhouse/libs/db"
	agentv1 "github.com/nathan-pruitt/openhouse/protos/gen/agent/v1"
	"github.com/nathan-pruitt/openhouse/services/agent-service/internal/storage"
)

type server struct {
	agentv1.UnimplementedAgentServiceServer
	pool *db.Pool
	repo *storage.Repository
}

func Register(grpcServer *grpc.Server, pool *db.Pool, repo *storage.Repository) {
	agentv1.RegisterAgentServiceServer(grpcServer, &server{pool: pool, repo: repo})
}

func (s *server) GetAgentProfile(ctx context.Context, req *agentv1.AgentProfileRequest) (*agentv1.AgentProfileResponse, error) {
	offsets := parseOffsets(config.String("REMINDER_OFFSETS_MINUTES", "1440,60"))
	timezone := config.String("TIMEZONE", "UTC")
	name := ""

	if s.repo != nil && req.GetAgentId() != "" {
		p, err := s.repo.GetOrCreateProfile(ctx, req.GetAgentId())
		if err == nil {
			if strings.TrimSpace(p.Timezone) != "" {
				timezone = strings.TrimSpace(p.Timezone)
			}
			name = strings.TrimSpace(p.Name)
			if len(p.OffsetsMins) > 0 {
				offsets = nil
				for _, v := range p.OffsetsMins {
					if v <= 0 {
						continue
					}
					offsets = append(offsets, int32(v))
				}
				if len(offsets) == 0 {
					offsets = parseOffsets("1440,60")
				}
			}
		}
	}

	return &agentv1.AgentProfileResponse{
		AgentId:                req.GetAgentId(),
		Name:                   name,
		Timezone:               timezone,
		ReminderOffsetsMinutes: offsets,
	}, nil
}

// GetListingConfig assembles everything the slot engine needs in one call:
// the agent's timezone and week schedule, the listing's grid parameters,
// and time-off blackouts over the booking window.
func (s *server) GetListingConfig(ctx context.Context, req *agentv1.ListingConfigRequest) (*agentv1.ListingConfigResponse, error) {
	resp := &agentv1.ListingConfigResponse{
		AgentId:                req.GetAgentId(),
		ListingId:              req.GetListingId(),
		Timezone:               "UTC",
		ShowingDurationMinutes: 30,
		BufferMinutes:          15,
		DaysAhead:              7,
	}
	if s.repo == nil || req.GetAgentId() == "" || req.GetListingId() == "" {
		return resp, nil
	}

	profile, err := s.repo.GetOrCreateProfile(ctx, req.GetAgentId())
	if err == nil && strings.TrimSpace(profile.Timezone) != "" {
		resp.Timezone = strings.TrimSpace(profile.Timezone)
	}

	listing, err := s.repo.GetListing(ctx, req.GetAgentId(), req.GetListingId())
	if err == nil {
		if listing.DurationMins > 0 {
			resp.ShowingDurationMinutes = int32(listing.DurationMins)
		}
		if listing.BufferMins >= 0 {
			resp.BufferMinutes = int32(listing.BufferMins)
		}
		if listing.DaysAhead > 0 {
			resp.DaysAhead = int32(listing.DaysAhead)
		}
	}

	for wd := 0; wd <= 6; wd++ {
		wh, err := s.repo.GetWorkingHours(ctx, req.GetAgentId(), wd)
		if err != nil {
			continue
		}
		resp.Week = append(resp.Week, &agentv1.DayHours{
			DayOfWeek: int32(wh.Weekday),
			Enabled:   wh.Enabled,
			Start:     wh.StartClock,
			End:       wh.EndClock,
		})
	}

	loc, err := time.LoadLocation(resp.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	year, month, day := now.Date()
	anchor := time.Date(year, month, day, 0, 0, 0, 0, loc)
	horizonEnd := anchor.AddDate(0, 0, int(resp.DaysAhead)+1)

	blocks, err := s.repo.ListTimeOff(ctx, req.GetAgentId(), anchor.UTC(), horizonEnd.UTC(), 500)
	if err != nil {
		return resp, nil
	}
	for _, b := range mergeIntervals(blocks) {
		resp.TimeOff = append(resp.TimeOff, &agentv1.TimeOffInterval{
			StartUtc: timestamppb.New(b.Start),
			EndUtc:   timestamppb.New(b.End),
		})
	}
	return resp, nil
}

type interval struct {
	Start time.Time
	End   time.Time
}

// mergeIntervals collapses overlapping time-off rows so the engine sees
// each blackout once.
func mergeIntervals(blocks []storage.TimeOff) []interval {
	var in []interval
	for _, t := range blocks {
		s := t.StartTime.UTC()
		e := t.EndTime.UTC()
		if e.After(s) {
			in = append(in, interval{Start: s, End: e})
		}
	}
	if len(in) == 0 {
		return nil
	}

	sortIntervals(in)
	merged := make([]interval, 0, len(in))
	for _, cur := range in {
		if len(merged) == 0 {
			merged = append(merged, cur)
			continue
		}
		last := &merged[len(merged)-1]
		if cur.Start.After(last.End) {
			merged = append(merged, cur)
			continue
		}
		if cur.End.After(last.End) {
			last.End = cur.End
		}
	}
	return merged
}

func sortIntervals(in []interval) {
	// Small n; insertion sort keeps this dependency-free.
	for i := 1; i < len(in); i++ {
		j := i
		for j > 0 && (in[j].Start.Before(in[j-1].Start) || (in[j].Start.Equal(in[j-1].Start) && in[j].End.Before(in[j-1].End))) {
			in[j], in[j-1] = in[j-1], in[j]
			j--
		}
	}
}

func parseOffsets(raw string) []int32 {
	var out []int32
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mins, err := strconv.Atoi(part)
		if err != nil || mins <= 0 {
			continue
		}
		out = append(out, int32(mins))
	}
	if len(out) == 0 {
		out = []int32{1440}
	}
	return out
}
