package firestarter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatboyindustrial/firestarter/pkg/config"
	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
	"github.com/fatboyindustrial/firestarter/pkg/locator"
)

// staticDir pretends every jar lives directly in dir.
func staticDir(dir string) locator.Locator {
	return locator.Func(func(filename string) (string, bool, error) {
		return filepath.Join(dir, filename), true, nil
	})
}

// alwaysFails never finds anything.
var alwaysFails = locator.Func(func(string) (string, bool, error) {
	return "", false, nil
})

func testLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "firestarter_test",
		Level: hclog.Trace,
	})
}

func mustVm(t *testing.T, name string, heap int, jar string, args []string, props map[string]string) *config.VmConfig {
	t.Helper()
	vm, err := config.NewVmConfig(name, heap, jar, args, props)
	require.NoError(t, err)
	return vm
}

var version = NewParameters(map[string]string{"VERSION": "0.0.1-SNAPSHOT"})

func TestProcess(t *testing.T) {
	testCases := []struct {
		name string
		vm   func(t *testing.T) *config.VmConfig
		want []string
	}{
		{
			name: "no arguments",
			vm: func(t *testing.T) *config.VmConfig {
				return mustVm(t, "TestJvm1", 128, "target1-${VERSION}.jar", nil, nil)
			},
			want: []string{
				"java", "-server", "-Xms128M", "-Xmx128M", "-Dfirestarter.vmname=TestJvm1",
				"-jar", "/home/yossarian/target1-0.0.1-SNAPSHOT.jar",
			},
		},
		{
			name: "trailing arguments",
			vm: func(t *testing.T) *config.VmConfig {
				return mustVm(t, "TestJvm1", 128, "target1-${VERSION}.jar",
					[]string{"-switch", "value", "-option", "verbose"}, nil)
			},
			want: []string{
				"java", "-server", "-Xms128M", "-Xmx128M", "-Dfirestarter.vmname=TestJvm1",
				"-jar", "/home/yossarian/target1-0.0.1-SNAPSHOT.jar",
				"-switch", "value", "-option", "verbose",
			},
		},
		{
			name: "properties in key order",
			vm: func(t *testing.T) *config.VmConfig {
				return mustVm(t, "TestJvm1", 128, "target1-${VERSION}.jar", nil, map[string]string{
					"subliminal.message":      "Buy StayPuft Marshmallows!",
					"my.application.property": "foo-bar-baz",
				})
			},
			want: []string{
				"java", "-server", "-Xms128M", "-Xmx128M", "-Dfirestarter.vmname=TestJvm1",
				`"-Dmy.application.property=foo-bar-baz"`,
				`"-Dsubliminal.message=Buy StayPuft Marshmallows!"`,
				"-jar", "/home/yossarian/target1-0.0.1-SNAPSHOT.jar",
			},
		},
	}

	loc := staticDir("/home/yossarian/")
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Process(loc, "test", version, tc.vm(t))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Process() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcessLine(t *testing.T) {
	vm := mustVm(t, "TestJvm1", 128, "target1-${VERSION}.jar", []string{"-switch", "value", "-option", "verbose"}, nil)

	tokens, err := Process(staticDir("/home/yossarian/"), "test", version, vm)
	require.NoError(t, err)

	expected := "java -server -Xms128M -Xmx128M -Dfirestarter.vmname=TestJvm1 -jar /home/yossarian/target1-0.0.1-SNAPSHOT.jar" +
		" -switch value -option verbose"
	assert.Equal(t, expected, Line(tokens))
}

func TestProcessSubstitutesEverywhere(t *testing.T) {
	params := NewParameters(map[string]string{
		"VERSION": "1.2",
		"VARIANT": "Z",
	})
	vm := mustVm(t, "Jvm-${VARIANT}", 64, "target2-${VERSION}-${VARIANT}.jar",
		[]string{"-variant", "${VARIANT}", "${UNKNOWN}"},
		map[string]string{"app.variant": "${VARIANT}"})

	var searched []string
	loc := locator.Func(func(filename string) (string, bool, error) {
		searched = append(searched, filename)
		return "/opt/" + filename, true, nil
	})

	a := &Assembler{Locator: loc, Logger: testLogger()}
	got, err := a.Process("test", params, vm)
	require.NoError(t, err)

	want := []string{
		"java", "-server", "-Xms64M", "-Xmx64M", "-Dfirestarter.vmname=Jvm-Z",
		`"-Dapp.variant=Z"`,
		"-jar", "/opt/target2-1.2-Z.jar",
		"-variant", "Z", "${UNKNOWN}",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Process() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"target2-1.2-Z.jar"}, searched)
}

func TestProcessJarNotFound(t *testing.T) {
	vm := mustVm(t, "TestJvm1", 128, "target1-${VERSION}.jar", []string{"-switch"}, nil)

	got, err := Process(alwaysFails, "test", version, vm)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, fserrors.ErrJarNotFound))

	var notFound *JarNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "target1-0.0.1-SNAPSHOT.jar", notFound.Filename)
}

func TestProcessLocatorFailure(t *testing.T) {
	boom := locator.Func(func(string) (string, bool, error) {
		return "", false, fserrors.ErrFilesystemAccess
	})
	vm := mustVm(t, "TestJvm1", 128, "app.jar", nil, nil)

	got, err := Process(boom, "test", Parameters{}, vm)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, fserrors.ErrFilesystemAccess))
	assert.False(t, errors.Is(err, fserrors.ErrJarNotFound))
}

func TestProcessIsIdempotent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "svc", "target"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "svc", "target", "svc-1.0.jar"), nil, 0o644))

	loc, err := locator.NewDepthFirst(root, testLogger())
	require.NoError(t, err)

	vm := mustVm(t, "Svc", 256, "svc-${V}.jar", []string{"-a"}, map[string]string{"b": "2", "a": "1"})
	params := NewParameters(map[string]string{"V": "1.0"})

	first, err := Process(loc, "test", params, vm)
	require.NoError(t, err)
	second, err := Process(loc, "test", params, vm)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, filepath.Join(root, "svc", "target", "svc-1.0.jar"))
}

func TestProcessHeapDiagnostics(t *testing.T) {
	vm := mustVm(t, "TestJvm1", 128, "app.jar", []string{"-x"}, nil)

	testCases := []struct {
		name string
		env  map[string]string
		want []string
	}{
		{
			name: "without dump path",
			env:  map[string]string{},
			want: []string{
				"java", "-server", "-XX:+UseG1GC", "-XX:+HeapDumpOnOutOfMemoryError",
				"-Xms128M", "-Xmx128M", "-Dfirestarter.vmname=TestJvm1",
				"-jar", "/srv/app.jar", "-x",
			},
		},
		{
			name: "empty dump path",
			env:  map[string]string{HeapDumpPathEnv: ""},
			want: []string{
				"java", "-server", "-XX:+UseG1GC", "-XX:+HeapDumpOnOutOfMemoryError",
				"-Xms128M", "-Xmx128M", "-Dfirestarter.vmname=TestJvm1",
				"-jar", "/srv/app.jar", "-x",
			},
		},
		{
			name: "with dump path",
			env:  map[string]string{HeapDumpPathEnv: "/var/dumps"},
			want: []string{
				"java", "-server", "-XX:+UseG1GC", "-XX:+HeapDumpOnOutOfMemoryError", "-XX:HeapDumpPath=/var/dumps",
				"-Xms128M", "-Xmx128M", "-Dfirestarter.vmname=TestJvm1",
				"-jar", "/srv/app.jar", "-x",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := &Assembler{
				Locator:         staticDir("/srv"),
				Logger:          testLogger(),
				HeapDiagnostics: true,
				LookupEnv: func(key string) (string, bool) {
					v, ok := tc.env[key]
					return v, ok
				},
			}
			got, err := a.Process("test", Parameters{}, vm)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Process() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
