package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ryotarai/sepconfig/configure"
	"github.com/ryotarai/sepconfig/endpoint"
	"github.com/ryotarai/sepconfig/fleet"
	"github.com/ryotarai/sepconfig/plugin"
	"github.com/ryotarai/sepconfig/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Apply(ctx context.Context, targetID string, payload []byte) error {
	args := m.Called(targetID, payload)
	return args.Error(0)
}

func (m *MockExecutor) Remove(ctx context.Context, targetID string, payload []byte) error {
	args := m.Called(targetID, payload)
	return args.Error(0)
}

// durableStorage is a MemoryStorage that claims to outlive the process.
type durableStorage struct {
	*storage.MemoryStorage
}

func (durableStorage) Persistent() bool { return true }

// failingStorage rejects the Nth PutRecord call.
type failingStorage struct {
	storage.Storage
	failOn int
	puts   int
}

func (s *failingStorage) PutRecord(r *storage.Record) error {
	s.puts++
	if s.puts == s.failOn {
		return errors.New("READONLY You can't write against a read only replica.")
	}
	return s.Storage.PutRecord(r)
}

func orchestratorForTest(executor Executor) (*Orchestrator, storage.Storage) {
	return orchestratorWithStorage(executor, durableStorage{storage.NewMemoryStorage()})
}

func orchestratorWithStorage(executor Executor, s storage.Storage) (*Orchestrator, storage.Storage) {
	o := New(executor, s)
	o.now = func() time.Time { return time.Unix(600, 0) }
	ids := 0
	o.newID = func() string {
		ids++
		return string(rune('a' + ids - 1))
	}
	return o, s
}

func configurationForTest(capacity int64) *configure.CompiledConfiguration {
	return &configure.CompiledConfiguration{
		Connection: endpoint.ConnectionDescriptor{Hostname: "rq.internal", Port: 8080, Protocol: endpoint.ProtocolHTTP},
		Settings:   (&plugin.Compiler{DefaultRegion: "us-west-2"}).Compile(plugin.Settings{}),
		FleetRequests: map[string]*fleet.RequestDocument{
			"group1": {AllocationStrategy: "lowestPrice", TargetCapacity: capacity, Type: "maintain"},
		},
	}
}

func TestApply(t *testing.T) {
	executor := new(MockExecutor)
	o, s := orchestratorForTest(executor)
	c := configurationForTest(2)
	payload, _ := c.Payload()
	digest, _ := c.Digest()

	executor.On("Apply", "rq", payload).Return(nil).Once()

	result, err := o.Apply(context.Background(), "rq", c)
	require.NoError(t, err)
	assert.Equal(t, ResultApplied, result)

	r, err := s.GetRecord("rq")
	require.NoError(t, err)
	assert.Equal(t, &storage.Record{
		TargetID:   "rq",
		State:      storage.StateConfigured,
		Digest:     digest,
		AttemptID:  "a",
		FleetCount: 1,
		UpdatedAt:  time.Unix(600, 0),
	}, r)
	executor.AssertExpectations(t)
}

func TestApplyUnchangedIsNoop(t *testing.T) {
	executor := new(MockExecutor)
	o, _ := orchestratorForTest(executor)
	c := configurationForTest(2)
	payload, _ := c.Payload()

	executor.On("Apply", "rq", payload).Return(nil).Once()

	result, err := o.Apply(context.Background(), "rq", c)
	require.NoError(t, err)
	assert.Equal(t, ResultApplied, result)

	result, err = o.Apply(context.Background(), "rq", configurationForTest(2))
	require.NoError(t, err)
	assert.Equal(t, ResultUnchanged, result)

	executor.AssertNumberOfCalls(t, "Apply", 1)
}

func TestApplyChangedReplaces(t *testing.T) {
	executor := new(MockExecutor)
	o, s := orchestratorForTest(executor)
	executor.On("Apply", "rq", mock.Anything).Return(nil)

	_, err := o.Apply(context.Background(), "rq", configurationForTest(2))
	require.NoError(t, err)

	changed := configurationForTest(5)
	result, err := o.Apply(context.Background(), "rq", changed)
	require.NoError(t, err)
	assert.Equal(t, ResultApplied, result)

	payload, _ := changed.Payload()
	executor.AssertCalled(t, "Apply", "rq", payload)

	digest, _ := changed.Digest()
	r, _ := s.GetRecord("rq")
	assert.Equal(t, digest, r.Digest)
	assert.Equal(t, "b", r.AttemptID)
}

func TestApplyFailureKeepsPriorState(t *testing.T) {
	executor := new(MockExecutor)
	o, s := orchestratorForTest(executor)
	first := configurationForTest(2)
	firstPayload, _ := first.Payload()
	executor.On("Apply", "rq", firstPayload).Return(nil)

	_, err := o.Apply(context.Background(), "rq", first)
	require.NoError(t, err)
	before, _ := s.GetRecord("rq")

	second := configurationForTest(3)
	secondPayload, _ := second.Payload()
	remoteErr := errors.New("connection refused")
	executor.On("Apply", "rq", secondPayload).Return(remoteErr)

	_, err = o.Apply(context.Background(), "rq", second)
	require.Error(t, err)

	var derr *DeploymentError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "rq", derr.Target)
	secondDigest, _ := second.Digest()
	assert.Equal(t, secondDigest, derr.Digest)
	assert.Equal(t, "b", derr.AttemptID)
	assert.True(t, errors.Is(err, remoteErr))

	after, _ := s.GetRecord("rq")
	assert.Equal(t, before, after)
}

func TestApplyFirstFailureLeavesUnconfigured(t *testing.T) {
	executor := new(MockExecutor)
	o, _ := orchestratorForTest(executor)
	executor.On("Apply", "rq", mock.Anything).Return(errors.New("timeout"))

	_, err := o.Apply(context.Background(), "rq", configurationForTest(2))
	require.Error(t, err)

	r, err := o.Status("rq")
	require.NoError(t, err)
	assert.Equal(t, storage.StateUnconfigured, r.State)
}

func TestTearDown(t *testing.T) {
	executor := new(MockExecutor)
	o, s := orchestratorForTest(executor)
	c := configurationForTest(2)
	executor.On("Apply", "rq", mock.Anything).Return(nil)
	executor.On("Remove", "rq", mock.Anything).Return(nil).Once()

	_, err := o.Apply(context.Background(), "rq", c)
	require.NoError(t, err)

	result, err := o.TearDown(context.Background(), "rq", c.Connection)
	require.NoError(t, err)
	assert.Equal(t, ResultRemoved, result)

	payload := executor.Calls[1].Arguments.Get(1).([]byte)
	m := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(payload, &m))
	assert.Equal(t, map[string]interface{}{
		"connection": map[string]interface{}{"hostname": "rq.internal", "port": "8080", "protocol": "HTTP"},
	}, m)

	r, _ := s.GetRecord("rq")
	assert.Nil(t, r)

	result, err = o.TearDown(context.Background(), "rq", c.Connection)
	require.NoError(t, err)
	assert.Equal(t, ResultAlreadyRemoved, result)
	executor.AssertNumberOfCalls(t, "Remove", 1)
}

func TestTearDownFailureKeepsConfigured(t *testing.T) {
	executor := new(MockExecutor)
	o, s := orchestratorForTest(executor)
	c := configurationForTest(2)
	executor.On("Apply", "rq", mock.Anything).Return(nil)
	executor.On("Remove", "rq", mock.Anything).Return(errors.New("forbidden"))

	_, err := o.Apply(context.Background(), "rq", c)
	require.NoError(t, err)

	_, err = o.TearDown(context.Background(), "rq", c.Connection)
	var derr *DeploymentError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "tear down", derr.Op)

	r, _ := s.GetRecord("rq")
	assert.Equal(t, storage.StateConfigured, r.State)
}

func TestTearDownWithoutPersistentRecord(t *testing.T) {
	executor := new(MockExecutor)
	o, s := orchestratorWithStorage(executor, storage.NewMemoryStorage())
	conn := endpoint.ConnectionDescriptor{Hostname: "rq.internal", Port: 8080, Protocol: endpoint.ProtocolHTTP}
	executor.On("Remove", "rq", mock.Anything).Return(nil)

	result, err := o.TearDown(context.Background(), "rq", conn)
	require.NoError(t, err)
	assert.Equal(t, ResultRemoved, result)
	executor.AssertNumberOfCalls(t, "Remove", 1)

	r, _ := s.GetRecord("rq")
	assert.Nil(t, r)
}

func TestTearDownWithoutPersistentRecordFailure(t *testing.T) {
	executor := new(MockExecutor)
	o, s := orchestratorWithStorage(executor, storage.NewMemoryStorage())
	executor.On("Remove", "rq", mock.Anything).Return(errors.New("connection refused"))

	_, err := o.TearDown(context.Background(), "rq", endpoint.ConnectionDescriptor{})
	var derr *DeploymentError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "tear down", derr.Op)

	r, _ := s.GetRecord("rq")
	assert.Nil(t, r)
}

func TestApplyRecordFailureAfterRemoteSuccess(t *testing.T) {
	executor := new(MockExecutor)
	o, _ := orchestratorWithStorage(executor, &failingStorage{Storage: storage.NewMemoryStorage(), failOn: 2})
	c := configurationForTest(2)
	executor.On("Apply", "rq", mock.Anything).Return(nil)

	_, err := o.Apply(context.Background(), "rq", c)
	var derr *DeploymentError
	require.True(t, errors.As(err, &derr))
	digest, _ := c.Digest()
	assert.Equal(t, digest, derr.Digest)
	assert.Equal(t, "a", derr.AttemptID)
	assert.Contains(t, err.Error(), "recording it failed")
}
