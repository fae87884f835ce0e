package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	announcementDomain "github.com/reshetovitsme/feed-announcer/internal/modules/announcement/domain"
	channelDomain "github.com/reshetovitsme/feed-announcer/internal/modules/channel/domain"
	dedupRepo "github.com/reshetovitsme/feed-announcer/internal/modules/dedup/repository"
	feedDomain "github.com/reshetovitsme/feed-announcer/internal/modules/feed/domain"
	relayDomain "github.com/reshetovitsme/feed-announcer/internal/modules/relay/domain"
	"github.com/reshetovitsme/feed-announcer/internal/shared/config"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	"github.com/samber/lo/mutable"
	"golang.org/x/time/rate"
)

// Session is the chat connection announcements go through
type Session interface {
	// Ready is closed once the session has logged in.
	Ready() <-chan struct{}
	ResolveChannel(ctx context.Context, chatID int64) (*channelDomain.Channel, error)
	Send(ctx context.Context, channel *channelDomain.Channel, text string) error
}

// Fetcher reads the polled feed
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]feedDomain.Entry, error)
}

// Recorder keeps a history of delivered announcements
type Recorder interface {
	Record(a *announcementDomain.Announcement) error
}

// Service runs the poll-and-announce cycle
type Service struct {
	cfg     *config.Config
	session Session
	fetcher Fetcher
	store   dedupRepo.Repository
	history Recorder
	status  *relayDomain.Status
	limiter *rate.Limiter
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.Mutex
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new relay service
func New(cfg *config.Config, session Session, fetcher Fetcher, store dedupRepo.Repository, history Recorder, status *relayDomain.Status) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		cfg:     cfg,
		session: session,
		fetcher: fetcher,
		store:   store,
		history: history,
		status:  status,
		// Burst of one: the first send goes out at once, each later send
		// waits a full SendDelay after the previous one.
		limiter: rate.NewLimiter(rate.Every(cfg.SendDelay), 1),
		logger:  slog.Default(),
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start waits for the chat session to become ready, runs the first cycle
// and schedules the rest every PollInterval. A cycle that is still running
// when the next tick fires causes that tick to be skipped.
func (s *Service) Start(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-s.ctx.Done():
		return
	case <-s.session.Ready():
	}
	s.status.SetReady(true)

	s.mu.Lock()
	if s.cron != nil || s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	logger := cronLogger{logger: s.logger.With("component", "scheduler")}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	id := c.Schedule(cron.Every(s.cfg.PollInterval), cron.FuncJob(func() {
		s.RunCycle(s.ctx)
	}))
	first := c.Entry(id).WrappedJob
	s.cron = c
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Relay started",
		"feed_url", s.cfg.FeedURL,
		"chat_id", s.cfg.ChatID,
		"poll_interval", s.cfg.PollInterval,
		"send_delay", s.cfg.SendDelay,
		"delivery_mode", s.cfg.DeliveryMode,
	)

	c.Start()

	// The first cycle goes through the wrapped job so it shares the
	// overlap guard with scheduled ticks.
	go func() {
		defer s.wg.Done()
		first.Run()
	}()
}

// Stop cancels any in-flight delivery and waits for the running cycle.
func (s *Service) Stop() {
	s.cancel()

	s.mu.Lock()
	c := s.cron
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	s.wg.Wait()
}

// RunCycle performs one resolve → fetch → filter → deliver pass.
func (s *Service) RunCycle(ctx context.Context) (report relayDomain.CycleReport) {
	report.StartedAt = s.now()
	defer func() {
		report.FinishedAt = s.now()
		s.status.Record(report, s.store.Len())
	}()

	s.status.SetState(relayDomain.CycleStateResolvingDestination)
	channel, err := s.session.ResolveChannel(ctx, s.cfg.ChatID)
	if err != nil {
		s.logger.Warn("Channel not found, skipping cycle. Check CHAT_ID", "chat_id", s.cfg.ChatID, "error", err)
		report.SkipReason = relayDomain.SkipDestinationUnavailable
		return report
	}
	report.ChannelID = channel.ID

	s.status.SetState(relayDomain.CycleStateFetching)
	entries, err := s.fetcher.Fetch(ctx, s.cfg.FeedURL)
	if err != nil {
		s.logger.Error("Error fetching feed", "feed_url", s.cfg.FeedURL, "error", err)
		report.SkipReason = relayDomain.SkipFetchFailed
		return report
	}
	report.Fetched = len(entries)

	s.status.SetState(relayDomain.CycleStateFiltering)
	accepted := s.accept(entries)
	report.New = len(accepted)

	s.status.SetState(relayDomain.CycleStateDelivering)
	for _, entry := range accepted {
		if err := s.limiter.Wait(ctx); err != nil {
			s.logger.Warn("Delivery interrupted", "remaining", report.New-report.Delivered-report.Failed, "error", err)
			report.Interrupted = true
			break
		}

		if err := s.session.Send(ctx, channel, entry.Link); err != nil {
			report.Failed++
			s.logger.Error("Failed to deliver entry",
				"entry_key", entry.Key(),
				"link", entry.Link,
				"chat_id", channel.ID,
				"delivery_mode", s.cfg.DeliveryMode,
				"error", err,
			)
			continue
		}

		if s.cfg.DeliveryMode == relayDomain.DeliveryModeAtLeastOnce {
			s.store.Add(entry.Key())
		}
		report.Delivered++

		if s.history != nil {
			if err := s.history.Record(&announcementDomain.Announcement{
				EntryKey:  entry.Key(),
				Link:      entry.Link,
				Title:     entry.Title,
				ChannelID: channel.ID,
				SentAt:    s.now(),
			}); err != nil {
				s.logger.Error("Failed to record announcement", "entry_key", entry.Key(), "error", err)
			}
		}
	}

	s.logger.Info("Cycle finished",
		"channel", channel.Name(),
		"fetched", report.Fetched,
		"new", report.New,
		"delivered", report.Delivered,
		"failed", report.Failed,
	)
	return report
}

// accept keeps entries that have not been seen and returns them oldest
// first. Feeds list newest first, so the accepted list is reversed.
//
// In at-most-once mode a key is committed to the store here, before any
// send is attempted. In at-least-once mode it is committed after a
// successful send.
func (s *Service) accept(entries []feedDomain.Entry) []feedDomain.Entry {
	unique := lo.UniqBy(entries, func(e feedDomain.Entry) string {
		return e.Key()
	})

	accepted := lo.Filter(unique, func(e feedDomain.Entry, _ int) bool {
		key := e.Key()
		if key == "" || e.Link == "" {
			s.logger.Warn("Skipping entry without link", "entry_id", e.ID, "title", e.Title)
			return false
		}
		if s.cfg.DeliveryMode == relayDomain.DeliveryModeAtLeastOnce {
			return !s.store.Has(key)
		}
		return s.store.MarkIfNew(key)
	})

	mutable.Reverse(accepted)
	return accepted
}
