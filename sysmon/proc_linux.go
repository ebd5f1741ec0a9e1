//go:build linux

package sysmon

import (
	"os"
	"strings"
)

func readKernelRelease() string {
	data, err := os.ReadFile("/proc/sys/kernel/osrelease")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func readCPUModel() string {
	data, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return "N/A"
	}
	if model := parseCPUModel(string(data)); model != "" {
		return model
	}
	return "N/A"
}

func readTotalMemGB() float64 {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0
	}
	kb, ok := parseMemInfoKB(string(data), "MemTotal")
	if !ok {
		return 0
	}
	return kbToGB(kb)
}

func readUsedMemGB() float64 {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0
	}
	total, ok := parseMemInfoKB(string(data), "MemTotal")
	if !ok {
		return 0
	}
	available, ok := parseMemInfoKB(string(data), "MemAvailable")
	if !ok {
		return 0
	}
	if available > total {
		return 0
	}
	return kbToGB(total - available)
}

func readCPUTimes() cpuTimes {
	data, err := os.ReadFile("/proc/stat")
	if err != nil {
		return cpuTimes{}
	}
	times, _ := parseCPUStat(string(data))
	return times
}
