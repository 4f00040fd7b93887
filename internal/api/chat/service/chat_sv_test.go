package chatService

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/api/faq"
	"HealthAssistant/internal/entity"
	"HealthAssistant/internal/scope"
	"HealthAssistant/pkg/intent"
	"HealthAssistant/pkg/responder"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFAQStore struct {
	records map[string]entity.FAQ
	err     error
}

func newFakeFAQStore(records ...entity.FAQ) *fakeFAQStore {
	f := &fakeFAQStore{records: make(map[string]entity.FAQ)}
	for _, r := range records {
		f.records[r.Intent] = r
	}
	return f
}

func (f *fakeFAQStore) GetByIntent(_ context.Context, label string) (entity.FAQ, error) {
	if f.err != nil {
		return entity.FAQ{}, f.err
	}
	r, ok := f.records[label]
	if !ok {
		return entity.FAQ{}, faq.ErrFAQNotFound
	}
	return r, nil
}

type fakeResponder struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeResponder) Complete(_ context.Context, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, message)
	if f.err != nil {
		return "", f.err
	}
	return "model: " + message, nil
}

func (f *fakeResponder) Ready() bool { return f.err == nil }

func (f *fakeResponder) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newTestService(t *testing.T, table intent.Table, store FAQStore, r responder.IResponder) IChatService {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	classifier, err := intent.NewClassifier(table)
	require.NoError(t, err)

	manager := scope.NewManager(scope.NewMemoryStore(100, 0))
	return NewChatService(logger, manager, classifier, store, r)
}

func TestSendMessage_AnswersFromFAQ(t *testing.T) {
	store := newFakeFAQStore(faq.SampleFAQs...)
	r := &fakeResponder{}
	svc := newTestService(t, intent.DefaultTable(), store, r)

	reply, err := svc.SendMessage(context.Background(), "s1", "How can I prevent malaria?")
	require.NoError(t, err)

	assert.Equal(t, chat.SourceFAQ, reply.Source)
	assert.Equal(t, "malaria_prevention", reply.Intent)
	assert.Equal(t, store.records["malaria_prevention"].Answer, reply.Message)
	assert.Empty(t, r.Calls())

	require.Len(t, reply.History, 2)
	assert.Equal(t, entity.SenderUser, reply.History[0].Sender)
	assert.Equal(t, "How can I prevent malaria?", reply.History[0].Message)
	assert.Equal(t, entity.SenderBot, reply.History[1].Sender)
	assert.Equal(t, reply.Message, reply.History[1].Message)
}

func TestSendMessage_FallbackUsesResponderWithExactMessage(t *testing.T) {
	r := &fakeResponder{}
	svc := newTestService(t, intent.DefaultTable(), newFakeFAQStore(faq.SampleFAQs...), r)

	reply, err := svc.SendMessage(context.Background(), "s1", "I feel weird today")
	require.NoError(t, err)

	assert.Equal(t, chat.SourceModel, reply.Source)
	assert.Equal(t, intent.FallbackLabel, reply.Intent)
	assert.Equal(t, []string{"I feel weird today"}, r.Calls())
	assert.Equal(t, "model: I feel weird today", reply.Message)
}

func TestSendMessage_FAQMissFallsThroughToResponder(t *testing.T) {
	r := &fakeResponder{}
	table := intent.Table{{Label: "x", Keywords: []string{"xylophone"}}}
	svc := newTestService(t, table, newFakeFAQStore(), r)

	reply, err := svc.SendMessage(context.Background(), "s1", "play the xylophone")
	require.NoError(t, err)

	assert.Equal(t, "x", reply.Intent)
	assert.Equal(t, chat.SourceModel, reply.Source)
	assert.Equal(t, []string{"play the xylophone"}, r.Calls())
}

func TestSendMessage_ResponderNotReady(t *testing.T) {
	r := &fakeResponder{err: responder.ErrUnavailable}
	svc := newTestService(t, intent.DefaultTable(), newFakeFAQStore(), r)

	reply, err := svc.SendMessage(context.Background(), "s1", "hello")
	require.NoError(t, err)

	assert.Equal(t, chat.SourceUnavailable, reply.Source)
	assert.Equal(t, chat.MessageWarmingUp, reply.Message)
	require.Len(t, reply.History, 2)
	assert.Equal(t, chat.MessageWarmingUp, reply.History[1].Message)
}

func TestSendMessage_ResponderFailureBecomesApology(t *testing.T) {
	r := &fakeResponder{err: fmt.Errorf("%w: %w", responder.ErrRequest, context.DeadlineExceeded)}
	svc := newTestService(t, intent.DefaultTable(), newFakeFAQStore(), r)

	reply, err := svc.SendMessage(context.Background(), "s1", "hello")
	require.NoError(t, err)

	assert.Equal(t, chat.SourceError, reply.Source)
	assert.Equal(t, chat.MessageApology, reply.Message)
	assert.Len(t, reply.History, 2)
}

func TestSendMessage_StoreFailurePropagatesAndLeavesHistory(t *testing.T) {
	store := newFakeFAQStore()
	store.err = faq.ErrFAQStoreFailure
	r := &fakeResponder{}
	svc := newTestService(t, intent.DefaultTable(), store, r)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "s1", "malaria")
	assert.ErrorIs(t, err, faq.ErrFAQStoreFailure)
	assert.Empty(t, r.Calls())

	h, err := svc.GetHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestSendMessage_AppendsOnePairPerMessage(t *testing.T) {
	svc := newTestService(t, intent.DefaultTable(), newFakeFAQStore(faq.SampleFAQs...), &fakeResponder{})
	ctx := context.Background()

	messages := []string{"malaria", "weird", "covid", "other"}
	for i, msg := range messages {
		reply, err := svc.SendMessage(ctx, "s1", msg)
		require.NoError(t, err)
		require.Len(t, reply.History, 2*(i+1))
	}

	h, err := svc.GetHistory(ctx, "s1")
	require.NoError(t, err)
	for i, msg := range messages {
		assert.Equal(t, entity.SenderUser, h[2*i].Sender)
		assert.Equal(t, msg, h[2*i].Message)
		assert.Equal(t, entity.SenderBot, h[2*i+1].Sender)
	}
}

func TestClearHistory_NextPairStartsAtZero(t *testing.T) {
	svc := newTestService(t, intent.DefaultTable(), newFakeFAQStore(faq.SampleFAQs...), &fakeResponder{})
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "s1", "malaria")
	require.NoError(t, err)
	require.NoError(t, svc.ClearHistory(ctx, "s1"))

	h, err := svc.GetHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, h)

	reply, err := svc.SendMessage(ctx, "s1", "covid")
	require.NoError(t, err)
	require.Len(t, reply.History, 2)
	assert.Equal(t, "covid", reply.History[0].Message)
}

func TestSendMessage_ScopesAreIndependent(t *testing.T) {
	svc := newTestService(t, intent.DefaultTable(), newFakeFAQStore(faq.SampleFAQs...), &fakeResponder{})
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "a", "malaria")
	require.NoError(t, err)
	require.NoError(t, svc.ClearHistory(ctx, "b"))

	ha, err := svc.GetHistory(ctx, "a")
	require.NoError(t, err)
	hb, err := svc.GetHistory(ctx, "b")
	require.NoError(t, err)

	assert.Len(t, ha, 2)
	assert.Empty(t, hb)
}

func TestSendMessage_ConcurrentMessagesKeepPairsTogether(t *testing.T) {
	svc := newTestService(t, intent.DefaultTable(), newFakeFAQStore(), &fakeResponder{})
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.SendMessage(ctx, "shared", fmt.Sprintf("msg-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	h, err := svc.GetHistory(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, h, 2*n)

	for i := 0; i < len(h); i += 2 {
		assert.Equal(t, entity.SenderUser, h[i].Sender)
		assert.Equal(t, entity.SenderBot, h[i+1].Sender)
		assert.Equal(t, "model: "+h[i].Message, h[i+1].Message)
	}
}

func TestMissingScopeID(t *testing.T) {
	svc := newTestService(t, intent.DefaultTable(), newFakeFAQStore(), &fakeResponder{})
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "", "malaria")
	assert.ErrorIs(t, err, chat.ErrMissingSession)

	_, err = svc.GetHistory(ctx, "")
	assert.ErrorIs(t, err, chat.ErrMissingSession)

	assert.ErrorIs(t, svc.ClearHistory(ctx, ""), chat.ErrMissingSession)
}

func TestClassify_DoesNotTouchHistory(t *testing.T) {
	svc := newTestService(t, intent.DefaultTable(), newFakeFAQStore(), &fakeResponder{})

	res := svc.Classify("covid cough")
	assert.Equal(t, "covid_symptoms", res.Label)
	assert.Equal(t, intent.DefaultTable().Labels(), svc.Intents().Labels())

	h, err := svc.GetHistory(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, h)
}

