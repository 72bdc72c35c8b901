package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ryotarai/sepconfig/configure"
	"github.com/ryotarai/sepconfig/endpoint"
	"github.com/ryotarai/sepconfig/storage"
	"github.com/sirupsen/logrus"
)

// Executor performs the remote call against the scheduler's plugin
// configuration API. Apply replaces the whole remote configuration.
type Executor interface {
	Apply(ctx context.Context, targetID string, payload []byte) error
	Remove(ctx context.Context, targetID string, payload []byte) error
}

type Result string

const (
	ResultApplied        Result = "applied"
	ResultUnchanged      Result = "unchanged"
	ResultRemoved        Result = "removed"
	ResultAlreadyRemoved Result = "already removed"
)

// DeploymentError is a failed apply or tear down. When the remote call
// itself failed, the stored state of the target is what it was before it.
type DeploymentError struct {
	Op        string
	Target    string
	Digest    string
	AttemptID string
	Err       error
}

func (e *DeploymentError) Error() string {
	return fmt.Sprintf("%s %s (digest %s, attempt %s): %s", e.Op, e.Target, e.Digest, e.AttemptID, e.Err)
}

func (e *DeploymentError) Unwrap() error {
	return e.Err
}

type Orchestrator struct {
	Executor Executor
	Storage  storage.Storage
	Logger   *logrus.Logger

	now   func() time.Time
	newID func() string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(executor Executor, s storage.Storage) *Orchestrator {
	return &Orchestrator{
		Executor: executor,
		Storage:  s,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		locks:    map[string]*sync.Mutex{},
	}
}

func (o *Orchestrator) logger() *logrus.Logger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

// lock serializes operations on one target.
func (o *Orchestrator) lock(targetID string) func() {
	o.mu.Lock()
	l, ok := o.locks[targetID]
	if !ok {
		l = &sync.Mutex{}
		o.locks[targetID] = l
	}
	o.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Apply converges the target to c. An unchanged configuration on a
// configured target makes no remote call.
func (o *Orchestrator) Apply(ctx context.Context, targetID string, c *configure.CompiledConfiguration) (Result, error) {
	defer o.lock(targetID)()

	payload, err := c.Payload()
	if err != nil {
		return "", err
	}
	digest, err := c.Digest()
	if err != nil {
		return "", err
	}

	prev, err := o.Storage.GetRecord(targetID)
	if err != nil {
		return "", fmt.Errorf("reading state of %s: %s", targetID, err)
	}
	if prev != nil && prev.State == storage.StateConfigured && prev.Digest == digest {
		o.logger().Infof("%s is up to date (digest %s)", targetID, digest)
		return ResultUnchanged, nil
	}

	attempt := &storage.Record{
		TargetID:   targetID,
		State:      storage.StateApplying,
		Digest:     digest,
		AttemptID:  o.newID(),
		FleetCount: len(c.FleetRequests),
		UpdatedAt:  o.now(),
	}
	if err := o.Storage.PutRecord(attempt); err != nil {
		return "", fmt.Errorf("writing state of %s: %s", targetID, err)
	}

	o.logger().Infof("applying configuration to %s (digest %s, attempt %s)", targetID, digest, attempt.AttemptID)
	if err := o.Executor.Apply(ctx, targetID, payload); err != nil {
		o.restore(targetID, prev)
		return "", &DeploymentError{Op: "apply", Target: targetID, Digest: digest, AttemptID: attempt.AttemptID, Err: err}
	}

	attempt.State = storage.StateConfigured
	attempt.UpdatedAt = o.now()
	if err := o.Storage.PutRecord(attempt); err != nil {
		return "", &DeploymentError{Op: "apply", Target: targetID, Digest: digest, AttemptID: attempt.AttemptID,
			Err: fmt.Errorf("configuration applied but recording it failed: %w", err)}
	}

	return ResultApplied, nil
}

type removal struct {
	Connection endpoint.ConnectionDescriptor `json:"connection"`
}

// TearDown removes the plugin configuration when the target itself goes
// away. Spot fleet requests already running are left to the plugin.
func (o *Orchestrator) TearDown(ctx context.Context, targetID string, conn endpoint.ConnectionDescriptor) (Result, error) {
	defer o.lock(targetID)()

	prev, err := o.Storage.GetRecord(targetID)
	if err != nil {
		return "", fmt.Errorf("reading state of %s: %s", targetID, err)
	}
	if prev == nil && o.Storage.Persistent() {
		return ResultAlreadyRemoved, nil
	}

	payload, err := json.Marshal(removal{Connection: conn})
	if err != nil {
		return "", err
	}

	// Without a persistent record the remote state is unknown, so the
	// removal is sent anyway.
	removing := storage.Record{TargetID: targetID}
	if prev != nil {
		removing = *prev
	} else {
		o.logger().Warnf("no stored state for %s, removing configuration unconditionally", targetID)
	}
	removing.State = storage.StateRemoving
	removing.AttemptID = o.newID()
	removing.UpdatedAt = o.now()
	if err := o.Storage.PutRecord(&removing); err != nil {
		return "", fmt.Errorf("writing state of %s: %s", targetID, err)
	}

	o.logger().Infof("removing configuration from %s (attempt %s)", targetID, removing.AttemptID)
	if err := o.Executor.Remove(ctx, targetID, payload); err != nil {
		o.restore(targetID, prev)
		return "", &DeploymentError{Op: "tear down", Target: targetID, Digest: removing.Digest, AttemptID: removing.AttemptID, Err: err}
	}

	if err := o.Storage.DeleteRecord(targetID); err != nil {
		return "", fmt.Errorf("deleting state of %s: %s", targetID, err)
	}
	return ResultRemoved, nil
}

func (o *Orchestrator) restore(targetID string, prev *storage.Record) {
	var err error
	if prev == nil {
		err = o.Storage.DeleteRecord(targetID)
	} else {
		err = o.Storage.PutRecord(prev)
	}
	if err != nil {
		o.logger().Errorf("restoring state of %s: %s", targetID, err)
	}
}

// Status returns the stored record, or an Unconfigured one.
func (o *Orchestrator) Status(targetID string) (*storage.Record, error) {
	r, err := o.Storage.GetRecord(targetID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return &storage.Record{TargetID: targetID, State: storage.StateUnconfigured}, nil
	}
	return r, nil
}
