package sysmon

import (
	"strconv"
	"strings"
)

// parseCPUModel extracts the first "model name" entry from
// /proc/cpuinfo contents.
func parseCPUModel(cpuinfo string) string {
	for _, line := range strings.Split(cpuinfo, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if strings.TrimSpace(key) == "model name" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// parseMemInfoKB extracts a kB-valued key like "MemTotal" or
// "MemAvailable" from /proc/meminfo contents.
func parseMemInfoKB(meminfo, key string) (uint64, bool) {
	for _, line := range strings.Split(meminfo, "\n") {
		name, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(name) != key {
			continue
		}
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "kB"))
		kb, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, false
		}
		return kb, true
	}
	return 0, false
}

// parseCPUStat parses the aggregate "cpu" line of /proc/stat into
// cumulative idle and total jiffies.
func parseCPUStat(stat string) (cpuTimes, bool) {
	for _, line := range strings.Split(stat, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[0] != "cpu" {
			continue
		}

		var times cpuTimes
		for i, field := range fields[1:] {
			value, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				return cpuTimes{}, false
			}
			times.total += value
			// Fields: user nice system idle iowait irq softirq ...
			if i == 3 || i == 4 {
				times.idle += value
			}
		}
		return times, true
	}
	return cpuTimes{}, false
}

// kbToGB converts kilobytes to gigabytes, rounded to two decimals.
func kbToGB(kb uint64) float64 {
	gb := float64(kb) / 1024 / 1024
	return float64(int(gb*100+0.5)) / 100
}
