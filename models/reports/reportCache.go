package reports

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/gfmis/budget_backend/config"
	"bitbucket.org/gfmis/budget_backend/models"
)

func reportCacheEnabled() bool {
	v := strings.TrimSpace(os.Getenv("ENABLE_REPORT_CACHE"))
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

func reportCacheTTL() time.Duration {
	// Env: REPORT_CACHE_TTL_SECONDS (default 120s)
	ttl := 120
	if v := strings.TrimSpace(os.Getenv("REPORT_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}
	return time.Duration(ttl) * time.Second
}

func economicReportCacheKey(period QuarterPeriod, fundingFilter string, scope models.OrgScope) string {
	org := scope.Filter()
	if org == "" {
		org = models.AllOrganizations
	}
	return fmt.Sprintf("economic_report:%d:%d:%s:%s", period.Year, period.Quarter, fundingFilter, org)
}

func cacheGet[T any](key string, dest *T) (bool, error) {
	if !reportCacheEnabled() {
		return false, nil
	}
	return config.GetRedisObject(key, dest)
}

func cacheSet(key string, obj any) {
	if !reportCacheEnabled() {
		return
	}
	// Cache write failures are not worth failing a report over.
	_ = config.SetRedisObject(key, obj, reportCacheTTL())
}
