package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tourdesk/internal/domain"
	"tourdesk/internal/pkg/poller"
	"tourdesk/internal/session"
	"tourdesk/internal/view"
)

// Session is the chat view of a dashboard. Entering starts the fixed-interval
// refresh loop; leaving cancels it and drops any late responses. Only the
// initial or explicit loads surface error toasts; background ticks log and
// keep the previous data.
type Session struct {
	principal session.Principal
	api       ChatAPI
	notifier  Notifier
	log       *zap.Logger
	poll      *poller.Poller

	threads  view.Collection[domain.ChatThread]
	messages view.Collection[domain.ChatMessage]

	mu          sync.Mutex
	selected    *domain.ChatThread
	active      bool
	threadQuery string

	memoThreads view.Memo[string, domain.ChatThread]
}

func NewSession(p session.Principal, chatAPI ChatAPI, notifier Notifier, interval time.Duration, log *zap.Logger) *Session {
	return &Session{
		principal: p,
		api:       chatAPI,
		notifier:  notifier,
		log:       log,
		poll:      poller.New(interval, log),
	}
}

// Enter loads threads once and starts polling. Entering an already-active
// session keeps the existing single loop.
func (s *Session) Enter(ctx context.Context) {
	s.mu.Lock()
	s.active = true
	s.mu.Unlock()

	s.loadThreads(ctx, true)
	s.poll.Start(ctx, s.tick)
}

// Leave stops polling and bars any in-flight response from writing state.
func (s *Session) Leave() {
	s.mu.Lock()
	s.active = false
	s.selected = nil
	s.mu.Unlock()

	s.poll.Stop()
}

func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Session) tick(ctx context.Context) {
	s.loadThreads(ctx, false)
	if sel := s.Selected(); sel != nil {
		s.loadMessages(ctx, sel.ID, false)
	}
}

func (s *Session) loadThreads(ctx context.Context, explicit bool) {
	s.threads.SetLoading(true)
	defer s.threads.SetLoading(false)

	threads, err := s.api.ListChatThreads(ctx)
	if err != nil {
		if explicit {
			s.notifier.Errorf("Failed to load chats.")
			if s.Active() {
				s.threads.Replace(nil)
			}
		} else {
			s.log.Warn("background thread refresh failed", zap.Error(err))
		}
		return
	}

	if !s.Active() {
		return
	}
	s.threads.Replace(threads)

	// Auto-select the first thread on the initial load.
	if s.Selected() == nil && len(threads) > 0 {
		s.Select(ctx, threads[0])
	}
}

func (s *Session) loadMessages(ctx context.Context, threadID int64, explicit bool) {
	s.messages.SetLoading(true)
	defer s.messages.SetLoading(false)

	msgs, err := s.api.ListChatMessages(ctx, threadID)
	if err != nil {
		if explicit {
			s.notifier.Errorf("Failed to load messages.")
		} else {
			s.log.Warn("background message refresh failed", zap.Int64("thread_id", threadID), zap.Error(err))
		}
		return
	}

	if !s.Active() {
		return
	}
	s.messages.Replace(msgs)
}

// Select makes the thread current and loads its messages.
func (s *Session) Select(ctx context.Context, t domain.ChatThread) {
	s.mu.Lock()
	thread := t
	s.selected = &thread
	s.mu.Unlock()

	s.loadMessages(ctx, t.ID, true)
}

func (s *Session) Selected() *domain.ChatThread {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Send posts a message to the selected thread and refreshes it. Blank input
// and no selection are silent no-ops, matching the input box behavior.
func (s *Session) Send(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	sel := s.Selected()
	if text == "" || sel == nil {
		return
	}

	if err := s.api.SendChatMessage(ctx, sel.ID, s.principal.ID, text); err != nil {
		s.notifier.Errorf("Failed to send message.")
		return
	}
	s.loadMessages(ctx, sel.ID, false)
}

func (s *Session) SetThreadQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threadQuery = q
}

// FilteredThreads applies the free-text filter over title and last message.
func (s *Session) FilteredThreads() []domain.ChatThread {
	s.mu.Lock()
	q := s.threadQuery
	s.mu.Unlock()

	items, rev := s.threads.Snapshot()
	return s.memoThreads.Get(rev, q, func() []domain.ChatThread {
		return view.Filter(items, func(t domain.ChatThread) bool {
			return view.MatchesQuery(q, t.Title, t.LastMessage)
		})
	})
}

func (s *Session) Messages() []domain.ChatMessage { return s.messages.Items() }

func (s *Session) LoadingThreads() bool  { return s.threads.Loading() }
func (s *Session) LoadingMessages() bool { return s.messages.Loading() }
