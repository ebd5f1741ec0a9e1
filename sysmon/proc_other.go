//go:build !linux

package sysmon

// Usage sampling reads Linux proc files; other platforms get static
// "not available" values and a flat live view.

func readKernelRelease() string { return "" }

func readCPUModel() string { return "N/A" }

func readTotalMemGB() float64 { return 0 }

func readUsedMemGB() float64 { return 0 }

func readCPUTimes() cpuTimes { return cpuTimes{} }
