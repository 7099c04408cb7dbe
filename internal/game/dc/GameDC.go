package dc

import (
	"context"
	"sync"
	"time"

	"ParallelRealms/internal/game/app/port"
	"ParallelRealms/internal/game/entity"
	"ParallelRealms/modules/kit/errx"
	"ParallelRealms/modules/kit/logx"

	"go.uber.org/zap"
)

const (
	keyPrefix     = "parallel-realms-game-save:"
	anonymousUser = "anonymous"

	defaultRemoteTimeout = 5 * time.Second
)

// SaveKey 本地存档键，未登录用户共用 anonymous 命名空间。
func SaveKey(userID string) string {
	if userID == "" {
		userID = anonymousUser
	}
	return keyPrefix + userID
}

type Options struct {
	UserID string
	Local  port.LocalCache
	// Remote 和 Economy 为 nil 表示未登录，只写本地。
	Remote        port.RemoteStore
	Economy       port.Economy
	Logger        logx.Logger
	RemoteTimeout time.Duration
}

// GameDC 协调一个玩家的存档：本地同步写，远端由后台协程异步写最新版本。
// 写远端失败只记日志，不回滚本地，下一次存档自然重试。
type GameDC struct {
	userID  string
	key     string
	local   port.LocalCache
	remote  port.RemoteStore
	economy port.Economy
	log     logx.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending *entity.SaveSnapshot
	version uint64
	// deleted 删除时的版本号，不大于它的快照不再写远端。
	deleted uint64
	spend   int
	refresh bool
	bank    int
	hasBank bool
	closed  bool

	// remoteMu 串行化远端写和远端删除。
	remoteMu sync.Mutex

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewGameDC(opts Options) *GameDC {
	if opts.UserID == "" {
		opts.UserID = anonymousUser
	}
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = defaultRemoteTimeout
	}
	d := &GameDC{
		userID:  opts.UserID,
		key:     SaveKey(opts.UserID),
		local:   opts.Local,
		remote:  opts.Remote,
		economy: opts.Economy,
		log:     opts.Logger.With(zap.String("user_id", opts.UserID)),
		timeout: opts.RemoteTimeout,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

func (d *GameDC) UserID() string { return d.userID }

func (d *GameDC) Key() string { return d.key }

// Authenticated 是否有远端存档。
func (d *GameDC) Authenticated() bool { return d.remote != nil }

// Save 同步写本地并把快照交给后台写远端。返回的只有本地写入错误。
func (d *GameDC) Save(ctx context.Context, s entity.GameState) error {
	s = s.Clone()
	s.UserID = d.userID

	var localErr error
	if d.local != nil {
		if err := d.local.Save(ctx, d.key, s); err != nil {
			localErr = errx.ErrInternal.WithReason(port.ReasonLocalWrite).WithData("key", d.key).WithCause(err)
			logx.ReportSysError(ctx, d.log, logx.NewSysLog("game.save.local", localErr))
		}
	}

	if d.remote != nil {
		d.mu.Lock()
		d.version++
		snap := &entity.SaveSnapshot{Version: d.version, State: s}
		d.mu.Unlock()
		d.enqueueLatest(snap)
	}
	return localErr
}

// LoadLocal 读本地存档。别的用户的存档和损坏的存档都视为没有。
func (d *GameDC) LoadLocal(ctx context.Context) (*entity.GameState, bool) {
	if d.local == nil {
		return nil, false
	}
	s, err := d.local.Load(ctx, d.key)
	if err != nil {
		e := errx.ErrCorrupt.WithReason(port.ReasonSnapshotCorrupt).WithData("key", d.key).WithCause(err)
		if errx.CodeOf(err) != errx.CodeCorrupt {
			e = errx.ErrInternal.WithReason(port.ReasonLocalRead).WithData("key", d.key).WithCause(err)
		}
		logx.ReportSysError(ctx, d.log, logx.NewSysLog("game.load.local", e))
		return nil, false
	}
	if s == nil {
		return nil, false
	}
	if s.UserID != d.userID {
		d.log.Warn("local save belongs to another user", zap.String("owner", s.UserID))
		return nil, false
	}
	return s, true
}

// LoadRemote 读远端存档，成功后刷新本地缓存。
func (d *GameDC) LoadRemote(ctx context.Context) (*entity.GameState, bool) {
	if d.remote == nil {
		return nil, false
	}
	rctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	s, err := d.remote.LoadGame(rctx, d.userID)
	if err != nil {
		e := errx.ErrUnavailable.WithReason(port.ReasonRemoteLoad).WithCause(err)
		logx.ReportSysError(ctx, d.log, logx.NewSysLog("game.load.remote", e))
		return nil, false
	}
	if s == nil {
		return nil, false
	}
	s.UserID = d.userID
	if d.local != nil {
		if err := d.local.Save(ctx, d.key, *s); err != nil {
			e := errx.ErrInternal.WithReason(port.ReasonLocalWrite).WithData("key", d.key).WithCause(err)
			logx.ReportSysError(ctx, d.log, logx.NewSysLog("game.load.refresh_local", e))
		}
	}
	return s, true
}

// Load 会话开始时调用：本地优先，远端兜底。
func (d *GameDC) Load(ctx context.Context) (*entity.GameState, bool) {
	if s, ok := d.LoadLocal(ctx); ok {
		return s, true
	}
	return d.LoadRemote(ctx)
}

// Delete 删除本地和远端存档，丢弃还没写出的快照。
// 正在写远端的快照先写完再删，已取出未写的快照直接作废。
func (d *GameDC) Delete(ctx context.Context) error {
	d.mu.Lock()
	d.pending = nil
	d.deleted = d.version
	d.mu.Unlock()

	var first error
	if d.local != nil {
		if err := d.local.Delete(ctx, d.key); err != nil {
			first = errx.ErrInternal.WithReason(port.ReasonLocalWrite).WithData("key", d.key).WithCause(err)
			logx.ReportSysError(ctx, d.log, logx.NewSysLog("game.delete.local", first))
		}
	}
	if d.remote != nil {
		d.remoteMu.Lock()
		defer d.remoteMu.Unlock()
		rctx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()
		if err := d.remote.DeleteGame(rctx, d.userID); err != nil {
			e := errx.ErrUnavailable.WithReason(port.ReasonRemoteDelete).WithCause(err)
			logx.ReportSysError(ctx, d.log, logx.NewSysLog("game.delete.remote", e))
			if first == nil {
				first = e
			}
		}
	}
	return first
}

// RecordGoldSpend 累计金币消耗，后台上报账本，返回的金库总额缓存起来。
func (d *GameDC) RecordGoldSpend(amount int) {
	if d.economy == nil || amount <= 0 {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.spend += amount
	d.mu.Unlock()
	d.signal()
}

// RefreshBank 请求后台刷新金库总额。
func (d *GameDC) RefreshBank() {
	if d.economy == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.refresh = true
	d.mu.Unlock()
	d.signal()
}

// BankGold 最近一次得到的金库总额。
func (d *GameDC) BankGold() (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bank, d.hasBank
}

// Close 停止后台协程，退出前写完已排队的快照。
func (d *GameDC) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *GameDC) enqueueLatest(s *entity.SaveSnapshot) {
	if s == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()
	d.signal()
}

func (d *GameDC) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

type work struct {
	snap    *entity.SaveSnapshot
	spend   int
	refresh bool
}

func (w work) empty() bool {
	return w.snap == nil && w.spend == 0 && !w.refresh
}

func (d *GameDC) popPending() work {
	d.mu.Lock()
	defer d.mu.Unlock()
	w := work{snap: d.pending, spend: d.spend, refresh: d.refresh}
	d.pending, d.spend, d.refresh = nil, 0, false
	return w
}

func (d *GameDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *GameDC) consumePending() {
	for {
		w := d.popPending()
		if w.empty() {
			return
		}
		if w.snap != nil {
			d.saveRemote(w.snap)
		}
		if w.spend > 0 {
			d.recordSpend(w.spend)
		} else if w.refresh {
			d.refreshBank()
		}
	}
}

func (d *GameDC) saveRemote(s *entity.SaveSnapshot) {
	d.remoteMu.Lock()
	defer d.remoteMu.Unlock()
	d.mu.Lock()
	stale := s.Version <= d.deleted
	d.mu.Unlock()
	if stale {
		d.log.Debug("drop snapshot taken before delete", zap.Uint64("version", s.Version))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.remote.SaveGame(ctx, s.State); err != nil {
		e := errx.ErrUnavailable.WithReason(port.ReasonRemoteSave).WithData("version", s.Version).WithCause(err)
		logx.ReportSysError(ctx, d.log, logx.NewSysLog("game.save.remote", e))
	}
}

func (d *GameDC) recordSpend(amount int) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	bank, err := d.economy.RecordSpend(ctx, amount)
	if err != nil {
		e := errx.ErrUnavailable.WithReason(port.ReasonEconomy).WithData("amount", amount).WithCause(err)
		logx.ReportSysError(ctx, d.log, logx.NewSysLog("game.economy.spend", e))
		return
	}
	d.setBank(bank)
}

func (d *GameDC) refreshBank() {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	bank, err := d.economy.Bank(ctx)
	if err != nil {
		e := errx.ErrUnavailable.WithReason(port.ReasonEconomy).WithCause(err)
		logx.ReportSysError(ctx, d.log, logx.NewSysLog("game.economy.bank", e))
		return
	}
	d.setBank(bank)
}

func (d *GameDC) setBank(v int) {
	d.mu.Lock()
	d.bank, d.hasBank = v, true
	d.mu.Unlock()
}
