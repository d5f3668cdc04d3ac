package pipeline

import "bytes"

// process runs a queued job through reading, folding and writing. The
// converter already confines failures to the source, so a failed job
// never takes the worker down with it.
func (o *Orchestrator) process(job *Job) {
	log := o.log.With("job_id", job.ID, "filename", job.Filename)

	job.SetStatus(StatusReading, "")

	conv := o.conv
	if job.Title != "" {
		conv = conv.WithTitle(job.Title)
	}

	job.SetStatus(StatusFolding, "")
	project, stats, err := conv.Convert(bytes.NewReader(job.FileData()), job.Filename)
	job.SetStats(stats)
	if err != nil {
		log.Error("fold failed", "error", err)
		job.SetStatus(StatusFailed, err.Error())
		return
	}

	job.SetStatus(StatusWriting, "")
	data, err := conv.Marshal(project)
	if err != nil {
		log.Error("marshal failed", "error", err)
		job.SetStatus(StatusFailed, err.Error())
		return
	}
	job.SetResult(data)
	job.SetStatus(StatusCompleted, "")

	phases, scenes, shots := project.Counts()
	log.Info("job complete", "phases", phases, "scenes", scenes, "shots", shots)
}
