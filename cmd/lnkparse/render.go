package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-errors/errors"

	"github.com/andrewstucki/lnkparse/internal/config"
	"github.com/andrewstucki/lnkparse/lnk"
)

func render(w io.Writer, format string, files []file) error {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(files, "", "  ")
		if err != nil {
			return errors.Wrap(err, 0)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.FormatText:
		for i, f := range files {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := renderText(w, f); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.Errorf("unknown output format %q", format)
}

func renderText(w io.Writer, f file) error {
	link := f.LNK
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row := func(label, value string) {
		fmt.Fprintf(tw, "  %s:\t%s\n", label, value)
	}
	optional := func(label string, value *string) {
		if value != nil && *value != "" {
			row(label, *value)
		}
	}

	fmt.Fprintf(tw, "%s\n", f.Name)
	row("SHA256", f.SHA256)
	optional("SSDEEP", &f.SSDEEP)
	if target, ok := link.TargetPath(); ok {
		row("Link target", target)
	}
	optional("Name", link.Name)
	optional("Arguments", link.Arguments)
	optional("Working dir", link.WorkingDir)
	optional("Icon location", link.IconLocation)

	header := link.Header
	row("Show command", header.ShowCommand.String())
	row("Link flags", header.LinkFlags.String())
	if header.FileAttributes != 0 {
		row("File attributes", header.FileAttributes.String())
	}
	row("File size", fmt.Sprintf("%d", header.FileSize))
	row("Created", formatTime(header.CreationTime))
	row("Accessed", formatTime(header.AccessTime))
	row("Modified", formatTime(header.WriteTime))
	if header.HotKey != nil {
		row("Hot key", header.HotKey.String())
	}

	if info := link.LinkInfo; info != nil {
		if volume := info.VolumeID; volume != nil {
			row("Drive type", volume.DriveType.String())
			row("Drive serial", fmt.Sprintf("%08X", volume.DriveSerialNumber))
			if volume.VolumeLabel != "" {
				row("Volume label", volume.VolumeLabel)
			}
		}
		if network := info.CommonNetworkRelativeLink; network != nil {
			row("Network share", network.NetName)
			optional("Network device", network.DeviceName)
		}
		if path, ok := info.Path(); ok {
			row("Location", path)
		}
	}

	for _, block := range link.ExtraData {
		row("Extra data", describeBlock(block))
	}
	return tw.Flush()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}

func describeBlock(block lnk.ExtraDataBlock) string {
	switch b := block.(type) {
	case *lnk.TrackerDataBlock:
		return fmt.Sprintf("TrackerDataBlock machine=%s droid=%s", b.MachineID, b.Droid[1])
	case *lnk.SpecialFolderDataBlock:
		return fmt.Sprintf("SpecialFolderDataBlock id=%d offset=%d", b.SpecialFolderID, b.Offset)
	case *lnk.KnownFolderDataBlock:
		return fmt.Sprintf("KnownFolderDataBlock id=%s offset=%d", b.KnownFolderID, b.Offset)
	case *lnk.PropertyStoreDataBlock:
		values := 0
		for _, storage := range b.Storages {
			values += len(storage.Values)
		}
		return fmt.Sprintf("PropertyStoreDataBlock storages=%d values=%d", len(b.Storages), values)
	case *lnk.EnvironmentVariableDataBlock:
		return fmt.Sprintf("EnvironmentVariableDataBlock target=%s", firstNonEmpty(b.TargetUnicode, b.TargetANSI))
	case *lnk.IconEnvironmentDataBlock:
		return fmt.Sprintf("IconEnvironmentDataBlock target=%s", firstNonEmpty(b.TargetUnicode, b.TargetANSI))
	case *lnk.DarwinDataBlock:
		return fmt.Sprintf("DarwinDataBlock id=%s", firstNonEmpty(b.DarwinDataUnicode, b.DarwinDataANSI))
	case *lnk.ShimDataBlock:
		return fmt.Sprintf("ShimDataBlock layer=%s", b.LayerName)
	case *lnk.ConsoleDataBlock:
		return fmt.Sprintf("ConsoleDataBlock face=%s", b.FaceName)
	case *lnk.ConsoleFEDataBlock:
		return fmt.Sprintf("ConsoleFEDataBlock codepage=%d", b.CodePage)
	case *lnk.VistaAndAboveIDListDataBlock:
		path, _ := b.Items.Path()
		return fmt.Sprintf("VistaAndAboveIDListDataBlock items=%d path=%s", len(b.Items), path)
	case *lnk.UnsupportedExtraData:
		return fmt.Sprintf("unsupported signature=0x%08X size=%d", b.Signature(), b.Size())
	}
	return fmt.Sprintf("signature=0x%08X size=%d", block.Signature(), block.Size())
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
