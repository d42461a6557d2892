//go:build linux

package scanner

import (
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// platformRootSkipNames are skipped only directly below a root
var platformRootSkipNames []string

func platformSkipPaths() []string {
	paths := []string{"/proc", "/sys", "/dev", "/snap"}
	if dataHome := xdgDataHome(); dataHome != "" {
		paths = append(paths, filepath.Join(dataHome, "Trash"))
	}
	return paths
}

func xdgDataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}

// virtualFSMagic lists statfs f_type values of kernel pseudo filesystems
var virtualFSMagic = map[uint32]struct{}{
	unix.PROC_SUPER_MAGIC:    {},
	unix.SYSFS_MAGIC:         {},
	unix.DEVPTS_SUPER_MAGIC:  {},
	unix.CGROUP_SUPER_MAGIC:  {},
	unix.CGROUP2_SUPER_MAGIC: {},
	unix.DEBUGFS_MAGIC:       {},
	unix.TRACEFS_MAGIC:       {},
	unix.SECURITYFS_MAGIC:    {},
	unix.SELINUX_MAGIC:       {},
	unix.BPF_FS_MAGIC:        {},
	unix.PSTOREFS_MAGIC:      {},
	unix.EFIVARFS_MAGIC:      {},
	unix.BINFMTFS_MAGIC:      {},
	unix.HUGETLBFS_MAGIC:     {},
	unix.NSFS_MAGIC:          {},
}

func isVirtualFS(path string) bool {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return false
	}
	_, ok := virtualFSMagic[uint32(stat.Type)]
	return ok
}

func isHiddenSystem(fs.FileInfo) bool {
	return false
}
