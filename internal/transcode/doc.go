// Package transcode defines the narrow conversion interface the speech
// pipeline depends on and its ffmpeg-backed implementation.
//
// Primary entry points:
//   - Transcoder: input path, output path, sample rate -> error
//   - FFmpeg: runs `ffmpeg -i <in> -ar <rate> <out>` via exec.CommandContext
//
// A non-zero ffmpeg exit is returned as dataset.ErrExternalTool; the caller is
// expected to abort the run.
package transcode
