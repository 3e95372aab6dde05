package rotation

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestCreateBackup(t *testing.T) {
	t.Run("snapshots live file to v8", func(t *testing.T) {
		dir := t.TempDir()
		live := filepath.Join(dir, "poster.png")
		writeFile(t, live, "live content")

		if err := CreateBackup(live); err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}

		v8 := filepath.Join(dir, "poster.v8.png")
		if got := readFile(t, v8); got != "live content" {
			t.Errorf("v8 content = %q, want live content", got)
		}
	})

	t.Run("rotation shifts backups down and drops v1", func(t *testing.T) {
		dir := t.TempDir()
		live := filepath.Join(dir, "poster.png")
		writeFile(t, live, "live")
		for i := 1; i <= 8; i++ {
			writeFile(t, versionPath(live, i), string(rune('0'+i)))
		}

		if err := CreateBackup(live); err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}

		// Old v2..v8 became v1..v7, and v8 is the fresh snapshot.
		for i := 1; i <= 7; i++ {
			want := string(rune('0' + i + 1))
			if got := readFile(t, versionPath(live, i)); got != want {
				t.Errorf("v%d content = %q, want %q", i, got, want)
			}
		}
		if got := readFile(t, versionPath(live, 8)); got != "live" {
			t.Errorf("v8 content = %q, want live", got)
		}
	})

	t.Run("backup count never exceeds the bound", func(t *testing.T) {
		dir := t.TempDir()
		live := filepath.Join(dir, "poster.png")
		writeFile(t, live, "live")

		for i := 0; i < MaxBackups+4; i++ {
			if err := CreateBackup(live); err != nil {
				t.Fatalf("CreateBackup() round %d error = %v", i, err)
			}
		}

		versions, err := ListAvailableBackups(live)
		if err != nil {
			t.Fatalf("ListAvailableBackups() error = %v", err)
		}
		// 8 backups plus the live file.
		if len(versions) != MaxBackups+1 {
			t.Errorf("len(versions) = %d, want %d", len(versions), MaxBackups+1)
		}
	})

	t.Run("missing live file is a no-op", func(t *testing.T) {
		dir := t.TempDir()
		live := filepath.Join(dir, "poster.png")

		if err := CreateBackup(live); err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("reading dir: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("dir has %d entries after no-op backup, want 0", len(entries))
		}
	})
}

func TestListAvailableBackups(t *testing.T) {
	t.Run("lists existing backups plus live version", func(t *testing.T) {
		dir := t.TempDir()
		live := filepath.Join(dir, "poster.png")
		writeFile(t, live, "live")
		writeFile(t, versionPath(live, 2), "2")
		writeFile(t, versionPath(live, 5), "5")

		versions, err := ListAvailableBackups(live)
		if err != nil {
			t.Fatalf("ListAvailableBackups() error = %v", err)
		}
		want := []int{2, 5, LiveVersion}
		if len(versions) != len(want) {
			t.Fatalf("versions = %v, want %v", versions, want)
		}
		for i := range want {
			if versions[i] != want[i] {
				t.Errorf("versions[%d] = %d, want %d", i, versions[i], want[i])
			}
		}
	})

	t.Run("no live file omits version 9", func(t *testing.T) {
		dir := t.TempDir()
		live := filepath.Join(dir, "poster.png")
		writeFile(t, versionPath(live, 1), "1")

		versions, err := ListAvailableBackups(live)
		if err != nil {
			t.Fatalf("ListAvailableBackups() error = %v", err)
		}
		if len(versions) != 1 || versions[0] != 1 {
			t.Errorf("versions = %v, want [1]", versions)
		}
	})
}

func TestCompact(t *testing.T) {
	t.Run("renumbers gapped backups preserving order", func(t *testing.T) {
		dir := t.TempDir()
		live := filepath.Join(dir, "poster.png")
		writeFile(t, versionPath(live, 2), "oldest")
		writeFile(t, versionPath(live, 5), "middle")
		writeFile(t, versionPath(live, 7), "newest")

		if err := Compact(live); err != nil {
			t.Fatalf("Compact() error = %v", err)
		}

		if got := readFile(t, versionPath(live, 1)); got != "oldest" {
			t.Errorf("v1 = %q, want oldest", got)
		}
		if got := readFile(t, versionPath(live, 2)); got != "middle" {
			t.Errorf("v2 = %q, want middle", got)
		}
		if got := readFile(t, versionPath(live, 3)); got != "newest" {
			t.Errorf("v3 = %q, want newest", got)
		}
		for i := 4; i <= MaxBackups; i++ {
			if _, err := os.Stat(versionPath(live, i)); !os.IsNotExist(err) {
				t.Errorf("v%d still exists after compact", i)
			}
		}
	})

	t.Run("contiguous numbering is a no-op", func(t *testing.T) {
		dir := t.TempDir()
		live := filepath.Join(dir, "poster.png")
		writeFile(t, versionPath(live, 1), "1")
		writeFile(t, versionPath(live, 2), "2")

		if err := Compact(live); err != nil {
			t.Fatalf("Compact() error = %v", err)
		}
		if got := readFile(t, versionPath(live, 1)); got != "1" {
			t.Errorf("v1 = %q, want 1", got)
		}
		if got := readFile(t, versionPath(live, 2)); got != "2" {
			t.Errorf("v2 = %q, want 2", got)
		}
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		dir := t.TempDir()
		live := filepath.Join(dir, "poster.png")
		writeFile(t, versionPath(live, 3), "3")
		writeFile(t, versionPath(live, 6), "6")

		if err := Compact(live); err != nil {
			t.Fatalf("Compact() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("reading dir: %v", err)
		}
		for _, e := range entries {
			if filepath.Ext(e.Name()) == tempSuffix {
				t.Errorf("temp file %s left behind", e.Name())
			}
		}
		if len(entries) != 2 {
			t.Errorf("dir has %d entries, want 2", len(entries))
		}
	})
}

func TestVersionPath(t *testing.T) {
	got := versionPath("/data/img/poster.png", 3)
	want := "/data/img/poster.v3.png"
	if got != want {
		t.Errorf("versionPath() = %v, want %v", got, want)
	}

	got = versionPath("/data/img/noext", 1)
	want = "/data/img/noext.v1"
	if got != want {
		t.Errorf("versionPath() without extension = %v, want %v", got, want)
	}
}
