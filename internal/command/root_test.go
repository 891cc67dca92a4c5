package command

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"ilabattach/internal/model"

	"github.com/nalgeon/be"
)

type stubClient struct {
	resolved   []string
	uploads    []string
	notes      []string
	id         string
	result     string
	resolveErr error
	uploadErr  error
}

func (c *stubClient) ResolveRequestID(_ context.Context, name, coreID, fromDate string) (string, error) {
	c.resolved = append(c.resolved, name+"/"+coreID+"/"+fromDate)
	if c.resolveErr != nil {
		return "", c.resolveErr
	}
	return c.id, nil
}

func (c *stubClient) UploadAttachment(_ context.Context, requestID string, att model.Attachment) (model.UploadResult, error) {
	c.uploads = append(c.uploads, requestID+":"+att.Path)
	c.notes = append(c.notes, att.Note)
	if c.uploadErr != nil {
		return nil, c.uploadErr
	}
	return model.UploadResult(c.result), nil
}

func execute(t *testing.T, stub *stubClient, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(Dependencies{Client: stub, Output: &out})
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestUploadByID(t *testing.T) {
	stub := &stubClient{result: `{"id":123456}`}

	out, err := execute(t, stub, "--id", "123456", "-f", "/tmp/readme.txt", "-n", "A Test Attachment")
	be.Err(t, err, nil)
	be.Equal(t, len(stub.resolved), 0)
	be.Equal(t, stub.uploads, []string{"123456:/tmp/readme.txt"})
	be.Equal(t, stub.notes, []string{"A Test Attachment"})
	be.Equal(t, out, "/tmp/readme.txt uploaded to iLab request 123456.\n")
}

func TestUploadByName(t *testing.T) {
	stub := &stubClient{id: "987654", result: `{"ilab_response":{"id":987654}}`}

	out, err := execute(t, stub, "--name", "123-JRG", "-c", "1234", "-f", "/tmp/readme.txt", "-v")
	be.Err(t, err, nil)
	be.Equal(t, stub.resolved, []string{"123-JRG/1234/" + model.DefaultFromDate})
	be.Equal(t, stub.uploads, []string{"987654:/tmp/readme.txt"})
	be.Equal(t, stub.notes, []string{""})

	want := "iLab ID for 123-JRG: 987654\n" +
		"{\n    \"ilab_response\": {\n        \"id\": 987654\n    }\n}\n"
	be.Equal(t, out, want)
}

func TestUploadByNameFromDate(t *testing.T) {
	stub := &stubClient{id: "1", result: `{}`}

	_, err := execute(t, stub, "--name", "123-JRG", "-c", "1234", "--from-date", "2015-03-14", "-f", "a.txt")
	be.Err(t, err, nil)
	be.Equal(t, stub.resolved, []string{"123-JRG/1234/2015-03-14"})
}

func TestRelativePathPrintedAbsolute(t *testing.T) {
	stub := &stubClient{result: `{}`}

	out, err := execute(t, stub, "--id", "1", "-f", "readme.txt")
	be.Err(t, err, nil)

	abs, _ := filepath.Abs("readme.txt")
	be.Equal(t, out, abs+" uploaded to iLab request 1.\n")
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "id_and_name",
			args: []string{"--id", "1", "--name", "123-JRG", "-c", "1234", "-f", "a.txt"},
			want: "none of the others can be",
		},
		{
			name: "neither",
			args: []string{"-f", "a.txt"},
			want: "at least one of the flags",
		},
		{
			name: "no_file",
			args: []string{"--id", "1"},
			want: `required flag(s) "file" not set`,
		},
		{
			name: "name_without_core",
			args: []string{"--name", "123-JRG", "-f", "a.txt"},
			want: "invalid core_id",
		},
		{
			name: "bad_id",
			args: []string{"--id", "abc", "-f", "a.txt"},
			want: "invalid id",
		},
		{
			name: "bad_from_date",
			args: []string{"--name", "123-JRG", "-c", "1234", "--from-date", "03/14/2015", "-f", "a.txt"},
			want: "invalid from_date",
		},
		{
			name: "extra_args",
			args: []string{"--id", "1", "-f", "a.txt", "b.txt"},
			want: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubClient{}
			_, err := execute(t, stub, tt.args...)
			be.Err(t, err, tt.want)
			be.Equal(t, len(stub.resolved), 0)
			be.Equal(t, len(stub.uploads), 0)
		})
	}
}

func TestResolveFailureSkipsUpload(t *testing.T) {
	rerr := &model.ResolutionError{Name: "123-JRG", Key: "service_requests[0]"}
	stub := &stubClient{resolveErr: rerr}

	out, err := execute(t, stub, "--name", "123-JRG", "-c", "1234", "-f", "a.txt")
	be.True(t, errors.Is(err, rerr))
	be.Equal(t, len(stub.resolved), 1)
	be.Equal(t, len(stub.uploads), 0)
	be.Equal(t, out, "")
}

func TestUploadFailure(t *testing.T) {
	uerr := &model.RemoteServiceError{Op: "upload", StatusCode: 401, Status: "401 Unauthorized"}
	stub := &stubClient{uploadErr: uerr}

	out, err := execute(t, stub, "--id", "1", "-f", "a.txt")
	var rerr *model.RemoteServiceError
	be.True(t, errors.As(err, &rerr))
	be.Equal(t, out, "")
}

func TestVerboseLowersLogLevel(t *testing.T) {
	level := new(slog.LevelVar)
	stub := &stubClient{result: `not json`}

	var out bytes.Buffer
	cmd := NewRootCommand(Dependencies{Client: stub, Output: &out, LogLevel: level})
	cmd.SetArgs([]string{"--id", "1", "-f", "a.txt", "--verbose"})
	be.Err(t, cmd.Execute(), nil)

	be.Equal(t, level.Level(), slog.LevelDebug)
	be.True(t, strings.Contains(out.String(), "not json"))
}
