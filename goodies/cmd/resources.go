package cmd

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

type resourceUsage struct {
	CPUPercent float64
	RSS        uint64
}

func currentUsage() (resourceUsage, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return resourceUsage{}, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return resourceUsage{}, err
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		return resourceUsage{}, err
	}

	return resourceUsage{CPUPercent: cpuPercent, RSS: mem.RSS}, nil
}
