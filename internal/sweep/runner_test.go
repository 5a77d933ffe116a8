package sweep_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sweeparr/sweeparr/internal/fsys"
	"github.com/sweeparr/sweeparr/internal/library"
	"github.com/sweeparr/sweeparr/internal/sweep"
	"github.com/sweeparr/sweeparr/internal/sweep/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedDir creates a temp directory holding n files and returns its path.
func seedDir(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		name := filepath.Join(dir, fmt.Sprintf("file%02d.mkv", i))
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunAllPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{
		"Movies": "1",
		"Shows":  "2",
	}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(10, nil)
	server.EXPECT().SectionSize(gomock.Any(), "2").Return(5, nil)
	server.EXPECT().EmptyTrash(gomock.Any(), "1").Return(true, nil)
	server.EXPECT().EmptyTrash(gomock.Any(), "2").Return(true, nil)

	defs := []library.Definition{
		{Name: "Movies", Paths: []string{seedDir(t, 10)}, MinFiles: 1, MinThreshold: 90},
		{Name: "Shows", Paths: []string{seedDir(t, 5)}, MinFiles: 1, MinThreshold: 90},
	}

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), nil, testLogger())
	result, err := runner.Run(context.Background(), defs)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 0, result.ExitCode())

	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, "Movies", result.Outcomes[0].Name)
	assert.True(t, result.Outcomes[0].Success)
	assert.Equal(t, 10, result.Outcomes[0].FileCount)
	assert.Equal(t, 10, result.Outcomes[0].MediaCount)
	assert.InDelta(t, 100.0, result.Outcomes[0].Percentage, 0.001)
	assert.Empty(t, result.Outcomes[0].Err)
}

func TestRunSectionsErrorIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)
	sink := mocks.NewMockMetricsSink(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(nil, errors.New("connection refused"))

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), sink, testLogger())
	result, err := runner.Run(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "listing sections")
}

func TestRunSectionSizeErrorIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{"Movies": "1"}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(0, errors.New("boom"))

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), nil, testLogger())
	result, err := runner.Run(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), `sizing section "Movies"`)
}

func TestRunSizesSectionsInSortedOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{
		"Zebra": "9",
		"Alpha": "1",
		"Mango": "5",
	}, nil)
	gomock.InOrder(
		server.EXPECT().SectionSize(gomock.Any(), "1").Return(1, nil),
		server.EXPECT().SectionSize(gomock.Any(), "5").Return(1, nil),
		server.EXPECT().SectionSize(gomock.Any(), "9").Return(1, nil),
	)

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), nil, testLogger())
	_, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)
}

func TestRunNoLibraries(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)
	sink := mocks.NewMockMetricsSink(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{"Movies": "1"}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(42, nil)
	sink.EXPECT().Record(gomock.Any()).Return(nil)

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), sink, testLogger())
	result, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.ExitCode())
	assert.Empty(t, result.Outcomes)
}

func TestRunPartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{
		"Movies": "1",
		"Shows":  "2",
	}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(3, nil)
	server.EXPECT().SectionSize(gomock.Any(), "2").Return(3, nil)
	// Only the passing library gets its trash emptied.
	server.EXPECT().EmptyTrash(gomock.Any(), "1").Return(true, nil)

	defs := []library.Definition{
		{Name: "Movies", Paths: []string{seedDir(t, 3)}, MinFiles: 1},
		{Name: "Shows", Paths: []string{seedDir(t, 0)}, MinFiles: 1},
	}

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), nil, testLogger())
	result, err := runner.Run(context.Background(), defs)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.ExitCode())
	assert.Contains(t, result.Outcomes[1].Err, "below minimum")
}

func TestRunAllFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{"Movies": "1"}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(100, nil)

	defs := []library.Definition{
		{Name: "Movies", Paths: []string{seedDir(t, 50)}, MinFiles: 1, MinThreshold: 90},
	}

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), nil, testLogger())
	result, err := runner.Run(context.Background(), defs)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, result.ExitCode())
	assert.Contains(t, result.Outcomes[0].Err, "threshold")
	assert.InDelta(t, 50.0, result.Outcomes[0].Percentage, 0.001)
}

func TestRunSectionNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{"Movies": "1"}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(10, nil)

	defs := []library.Definition{
		{Name: "Cartoons", Paths: []string{seedDir(t, 2)}, MinFiles: 1},
	}

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), nil, testLogger())
	result, err := runner.Run(context.Background(), defs)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ExitCode())
	assert.Contains(t, result.Outcomes[0].Err, `no section named "Cartoons"`)
}

func TestRunInvalidDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{"Movies": "1"}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(10, nil)

	defs := []library.Definition{
		{Name: "Movies", Paths: []string{"/nonexistent/movies"}, MinFiles: 1},
	}

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), nil, testLogger())
	result, err := runner.Run(context.Background(), defs)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Outcomes[0].Err, "directory invalid or inaccessible")
	assert.Equal(t, 0, result.Outcomes[0].FileCount)
}

func TestRunEmptyTrashRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{"Movies": "1"}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(2, nil)
	server.EXPECT().EmptyTrash(gomock.Any(), "1").Return(false, nil)

	defs := []library.Definition{
		{Name: "Movies", Paths: []string{seedDir(t, 2)}, MinFiles: 1},
	}

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), nil, testLogger())
	result, err := runner.Run(context.Background(), defs)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Outcomes[0].Err, "empty trash rejected")
}

func TestRunTrashRejectionIsPartial(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{
		"Movies": "1",
		"Shows":  "2",
	}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(2, nil)
	server.EXPECT().SectionSize(gomock.Any(), "2").Return(2, nil)
	server.EXPECT().EmptyTrash(gomock.Any(), "1").Return(true, nil)
	server.EXPECT().EmptyTrash(gomock.Any(), "2").Return(false, nil)

	defs := []library.Definition{
		{Name: "Movies", Paths: []string{seedDir(t, 2)}, MinFiles: 1},
		{Name: "Shows", Paths: []string{seedDir(t, 2)}, MinFiles: 1},
	}

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), nil, testLogger())
	result, err := runner.Run(context.Background(), defs)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ExitCode())
	assert.True(t, result.Outcomes[0].Success)
	assert.False(t, result.Outcomes[1].Success)
}

func TestRunEmptyTrashError(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{"Movies": "1"}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(2, nil)
	server.EXPECT().EmptyTrash(gomock.Any(), "1").Return(false, errors.New("token rejected"))

	defs := []library.Definition{
		{Name: "Movies", Paths: []string{seedDir(t, 2)}, MinFiles: 1},
	}

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), nil, testLogger())
	result, err := runner.Run(context.Background(), defs)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ExitCode())
	assert.Contains(t, result.Outcomes[0].Err, "emptying trash")
	assert.Contains(t, result.Outcomes[0].Err, "token rejected")
}

func TestRunZeroMediaCountFailsThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{"Movies": "1"}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(0, nil)

	defs := []library.Definition{
		{Name: "Movies", Paths: []string{seedDir(t, 8)}, MinFiles: 1, MinThreshold: 90},
	}

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), nil, testLogger())
	result, err := runner.Run(context.Background(), defs)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.InDelta(t, 0.0, result.Outcomes[0].Percentage, 0.001)
}

func TestRunSinkReceivesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)
	sink := mocks.NewMockMetricsSink(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{"Movies": "1"}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(2, nil)
	server.EXPECT().EmptyTrash(gomock.Any(), "1").Return(true, nil)

	var recorded sweep.Result
	sink.EXPECT().Record(gomock.Any()).DoAndReturn(func(r sweep.Result) error {
		recorded = r
		return nil
	})

	defs := []library.Definition{
		{Name: "Movies", Paths: []string{seedDir(t, 2)}, MinFiles: 1},
	}

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), sink, testLogger())
	result, err := runner.Run(context.Background(), defs)
	require.NoError(t, err)

	assert.Equal(t, result.Total, recorded.Total)
	assert.Equal(t, result.Successful, recorded.Successful)
	assert.False(t, recorded.Finished.Before(recorded.Started))
}

func TestRunSinkErrorIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)
	sink := mocks.NewMockMetricsSink(ctrl)

	server.EXPECT().Sections(gomock.Any()).Return(map[string]string{"Movies": "1"}, nil)
	server.EXPECT().SectionSize(gomock.Any(), "1").Return(2, nil)
	server.EXPECT().EmptyTrash(gomock.Any(), "1").Return(true, nil)
	sink.EXPECT().Record(gomock.Any()).Return(errors.New("disk full"))

	defs := []library.Definition{
		{Name: "Movies", Paths: []string{seedDir(t, 2)}, MinFiles: 1},
	}

	runner := sweep.NewRunner(server, fsys.NewChecker(testLogger()), sink, testLogger())
	result, err := runner.Run(context.Background(), defs)

	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode())
}
