// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/leaderboard", "200"))
	RecordAPIRequest("GET", "/api/v1/leaderboard", "200", 12*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/leaderboard", "200"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("gauge after inc = %v", got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("gauge after dec = %v", got)
	}
}

func TestRecordRefreshStampsLastSuccess(t *testing.T) {
	RecordRefresh("manual", "success", time.Second)
	if got := testutil.ToFloat64(RefreshLastSuccess); got == 0 {
		t.Error("last success timestamp not set")
	}

	stamp := testutil.ToFloat64(RefreshLastSuccess)
	RecordRefresh("scheduled", "failure", time.Second)
	if got := testutil.ToFloat64(RefreshLastSuccess); got != stamp {
		t.Error("failed refresh must not move the last success timestamp")
	}
}

func TestRecordIngest(t *testing.T) {
	before := testutil.ToFloat64(IngestRecords.WithLabelValues("posts"))
	RecordIngest("posts", 42)
	after := testutil.ToFloat64(IngestRecords.WithLabelValues("posts"))
	if after != before+42 {
		t.Errorf("ingest counter = %v, want %v", after, before+42)
	}

	errBefore := testutil.ToFloat64(IngestErrors.WithLabelValues("posts", "decode"))
	RecordIngestError("posts", "decode")
	errAfter := testutil.ToFloat64(IngestErrors.WithLabelValues("posts", "decode"))
	if errAfter != errBefore+1 {
		t.Errorf("error counter = %v", errAfter)
	}
}
