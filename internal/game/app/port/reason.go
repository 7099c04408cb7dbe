package port

// Reason 持久化失败的细分原因，挂在 errx 错误的 data["reason"] 上。
type Reason string

func (r Reason) ReasonCode() string { return string(r) }

const (
	ReasonLocalWrite      Reason = "LOCAL_CACHE_WRITE_FAIL"
	ReasonLocalRead       Reason = "LOCAL_CACHE_READ_FAIL"
	ReasonSnapshotCorrupt Reason = "SNAPSHOT_CORRUPT"
	ReasonRemoteSave      Reason = "REMOTE_SAVE_FAIL"
	ReasonRemoteLoad      Reason = "REMOTE_LOAD_FAIL"
	ReasonRemoteDelete    Reason = "REMOTE_DELETE_FAIL"
	ReasonEconomy         Reason = "ECONOMY_SPEND_FAIL"
)
