//go:build !windows

package crawl

import "syscall"

const (
	sighup  = syscall.SIGHUP
	sigusr1 = syscall.SIGUSR1
)
