package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/vecprep/internal/domain"
	"github.com/kailas-cloud/vecprep/pkg/wire"
)

func writeArgs(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunBuild_YAML(t *testing.T) {
	path := writeArgs(t, "search.yaml", `
table_name: orders
vectors:
  - [0.1, 0.2]
  - [0.3, 0.4]
ranges:
  - ["2019-05-25", "2019-06-01"]
  - start: 2019-07-01
    end: 2019-08-01
topk: 10
nprobe: 16
`)

	var out bytes.Buffer
	if err := runBuild(context.Background(), &out, "search", buildOptions{argsFile: path, target: "wire"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got wire.SearchParam
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got.Topk != 10 || got.Nprobe != 16 || len(got.QueryRecordArray) != 2 {
		t.Errorf("unexpected request %+v", got)
	}
	want := []wire.Range{
		{StartValue: "2019-05-25", EndValue: "2019-06-01"},
		{StartValue: "2019-07-01", EndValue: "2019-08-01"},
	}
	if len(got.QueryRangeArray) != 2 || got.QueryRangeArray[0] != want[0] || got.QueryRangeArray[1] != want[1] {
		t.Errorf("ranges = %+v, want %+v", got.QueryRangeArray, want)
	}
}

func TestRunBuild_JSONQdrant(t *testing.T) {
	path := writeArgs(t, "schema.json", `{"param": {"table_name": "orders", "dimension": 8, "metric_type": "IP"}}`)

	var out bytes.Buffer
	err := runBuild(context.Background(), &out, "table_schema", buildOptions{argsFile: path, target: "qdrant"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got struct {
		CollectionName string `json:"collection_name"`
		VectorsConfig  struct {
			Params struct {
				Size     string `json:"size"`
				Distance string `json:"distance"`
			} `json:"params"`
		} `json:"vectors_config"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got.CollectionName != "orders" {
		t.Errorf("collection_name = %q", got.CollectionName)
	}
	if got.VectorsConfig.Params.Distance != "Dot" || got.VectorsConfig.Params.Size != "8" {
		t.Errorf("unexpected params %+v", got.VectorsConfig.Params)
	}
}

func TestRunBuild_Errors(t *testing.T) {
	good := writeArgs(t, "cmd.yaml", "cmd: version\n")
	bad := writeArgs(t, "bad.yaml", "table_name: orders\nvectors: [[1], [2]]\nids: [1]\n")

	tests := []struct {
		name    string
		op      string
		opts    buildOptions
		wantErr error
		wantMsg string
	}{
		{"unknown op", "drop", buildOptions{argsFile: good, target: "wire"}, domain.ErrUnsupported, ""},
		{"missing file", "cmd", buildOptions{argsFile: filepath.Join(t.TempDir(), "nope.yaml"), target: "wire"}, nil, "read"},
		{"bad target", "cmd", buildOptions{argsFile: good, target: "milvus"}, nil, "--target"},
		{"invalid args", "insert", buildOptions{argsFile: bad, target: "wire"}, domain.ErrInvalidParameter, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := runBuild(context.Background(), &bytes.Buffer{}, tc.op, tc.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("expected %q in %q", tc.wantMsg, err.Error())
			}
		})
	}
}

func TestRootCmd_Version(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "vecprep dev") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRootCmd_BuildRequiresFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"build", "cmd"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without --file")
	}
}
