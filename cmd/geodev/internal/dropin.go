package internal

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/gmao-si/geodev/internal/run"
)

var (
	dropinNodes  int
	dropinTasks  int
	dropinTime   string
	dropinQOS    string
	dropinDryRun bool
)

var dropinCmd = &cobra.Command{
	Use:   "dropin",
	Short: "Drop into an interactive compute-node session",
	Long: `Dropin requests an interactive allocation via salloc. Inside an existing
allocation it instead reports the job id and task count of the current job.`,
	Args: cobra.NoArgs,
	RunE: runDropin,
}

func init() {
	f := dropinCmd.Flags()
	f.IntVar(&dropinNodes, "nodes", 1, "Number of nodes to request")
	f.IntVar(&dropinTasks, "ntasks-per-node", 0, "Tasks per node (default: all CPUs)")
	f.StringVar(&dropinTime, "time", "1:00:00", "Walltime of the session")
	f.StringVar(&dropinQOS, "qos", "", "Quality-of-service class to request")
	f.BoolVarP(&dropinDryRun, "dry-run", "n", false, "Print the command without running it")
	rootCmd.AddCommand(dropinCmd)
}

func runDropin(cmd *cobra.Command, args []string) error {
	if jobID := os.Getenv("SLURM_JOB_ID"); jobID != "" {
		tasks, err := jobTaskCount(os.Getenv)
		if err != nil {
			return err
		}
		nodes := os.Getenv("SLURM_JOB_NUM_NODES")
		if nodes == "" {
			nodes = "?"
		}
		fmt.Printf("job %s: %d tasks on %s node(s)\n", jobID, tasks, nodes)
		return nil
	}

	var runner run.Runner = &run.Exec{}
	if dropinDryRun {
		runner = &run.DryRun{W: os.Stdout}
	}
	sallocArgs := sallocArgs(dropinNodes, dropinTasks, dropinTime, dropinQOS)
	return runner.Run(cmd.Context(), "salloc", sallocArgs...)
}

func sallocArgs(nodes, tasksPerNode int, walltime, qos string) []string {
	if tasksPerNode <= 0 {
		tasksPerNode = runtime.NumCPU()
	}
	args := []string{
		"--nodes=" + strconv.Itoa(nodes),
		"--ntasks-per-node=" + strconv.Itoa(tasksPerNode),
		"--time=" + walltime,
	}
	if qos != "" {
		args = append(args, "--qos="+qos)
	}
	return args
}

// jobTaskCount resolves the task count of the current allocation from
// the scheduler environment. SLURM_NTASKS is authoritative when set;
// otherwise SLURM_TASKS_PER_NODE ("40(x2),20" means two nodes with 40
// tasks plus one with 20) is summed up.
func jobTaskCount(env func(string) string) (int, error) {
	if v := env("SLURM_NTASKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, eris.Wrapf(err, "dropin: bad SLURM_NTASKS %q", v)
		}
		return n, nil
	}
	spec := env("SLURM_TASKS_PER_NODE")
	if spec == "" {
		return 0, eris.New("dropin: no task count in environment")
	}
	return sumTasksPerNode(spec)
}

func sumTasksPerNode(spec string) (int, error) {
	total := 0
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		count := 1
		if open := strings.Index(part, "(x"); open >= 0 {
			repeat := strings.TrimSuffix(part[open+2:], ")")
			n, err := strconv.Atoi(repeat)
			if err != nil {
				return 0, eris.Wrapf(err, "dropin: bad repeat in %q", part)
			}
			count = n
			part = part[:open]
		}
		tasks, err := strconv.Atoi(part)
		if err != nil {
			return 0, eris.Wrapf(err, "dropin: bad task count in %q", part)
		}
		total += tasks * count
	}
	return total, nil
}
