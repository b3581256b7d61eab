package internal

import (
	"strings"
	"testing"
)

func TestSallocArgs(t *testing.T) {
	args := sallocArgs(2, 40, "2:00:00", "debug")
	want := []string{"--nodes=2", "--ntasks-per-node=40", "--time=2:00:00", "--qos=debug"}
	if len(args) != len(want) {
		t.Fatalf("sallocArgs = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("sallocArgs[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestSallocArgsDefaults(t *testing.T) {
	args := sallocArgs(1, 0, "1:00:00", "")
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "--qos") {
		t.Errorf("qos should be omitted: %v", args)
	}
	if strings.Contains(joined, "--ntasks-per-node=0") {
		t.Errorf("tasks per node should default to the CPU count: %v", args)
	}
}

func TestJobTaskCount(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    int
		wantErr bool
	}{
		{"ntasks wins", map[string]string{"SLURM_NTASKS": "80", "SLURM_TASKS_PER_NODE": "40(x3)"}, 80, false},
		{"single node", map[string]string{"SLURM_TASKS_PER_NODE": "40"}, 40, false},
		{"repeat", map[string]string{"SLURM_TASKS_PER_NODE": "40(x2)"}, 80, false},
		{"mixed", map[string]string{"SLURM_TASKS_PER_NODE": "40(x2),20"}, 100, false},
		{"empty env", map[string]string{}, 0, true},
		{"garbage ntasks", map[string]string{"SLURM_NTASKS": "lots"}, 0, true},
		{"garbage spec", map[string]string{"SLURM_TASKS_PER_NODE": "40(xq)"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jobTaskCount(func(k string) string { return tt.env[k] })
			if tt.wantErr {
				if err == nil {
					t.Error("want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("jobTaskCount: %v", err)
			}
			if got != tt.want {
				t.Errorf("jobTaskCount = %d, want %d", got, tt.want)
			}
		})
	}
}
