package audit

import "github.com/Fuabioo/zipaudit/internal/security"

const (
	RecommendRejectAbsolute  = "Reject ZIPs containing absolute paths."
	RecommendLimitRatio      = "Limit max compression ratio (500 recommended)."
	RecommendRefuseEncrypted = "Refuse encrypted entries to prevent password prompts."
	RecommendLimitDepth      = "Limit directory depth during extraction."
)

// RecommendationsHandler derives advisories from the final aggregate state.
type RecommendationsHandler struct{}

func (RecommendationsHandler) Visit(*Snapshot, *Report) {}

func (RecommendationsHandler) Finish(r *Report) {
	if r.HasAbsolutePaths {
		r.Recommend(RecommendRejectAbsolute)
	}
	if r.MaxRatio > security.MaxSuspiciousRatio {
		r.Recommend(RecommendLimitRatio)
	}
	if r.HasEncryptedEntries {
		r.Recommend(RecommendRefuseEncrypted)
	}
	if r.MaxDepthHint > security.RecommendedMaxDepth {
		r.Recommend(RecommendLimitDepth)
	}
}
