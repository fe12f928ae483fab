package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/miradorstack/logistics-pulse/internal/api"
	"github.com/miradorstack/logistics-pulse/internal/models"
)

func watchCmd() *cobra.Command {
	var addr, role, name string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream dashboard updates from a running engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return watch(cmd.OutOrStdout(), addr, role, name)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:50051", "Engine gRPC address")
	cmd.Flags().StringVar(&role, "role", models.RoleViewer, "Identity role (editor, viewer)")
	cmd.Flags().StringVar(&name, "name", "", "Identity display name")
	return cmd
}

func watch(out io.Writer, addr, role, name string) error {
	conn, client, err := api.Dial(addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req, err := structpb.NewStruct(map[string]any{"role": role, "name": name})
	if err != nil {
		return err
	}
	stream, err := client.WatchDashboard(ctx, req)
	if err != nil {
		return fmt.Errorf("watch %s: %w", addr, err)
	}
	for {
		view, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
				return nil
			}
			return fmt.Errorf("receive: %w", err)
		}
		fmt.Fprintln(out, summarize(view))
	}
}

// summarize renders one streamed view as a single log-friendly line.
func summarize(view *structpb.Struct) string {
	fields := view.GetFields()
	version := int(fields["version"].GetNumberValue())
	if fields["loading"].GetBoolValue() {
		return fmt.Sprintf("v%d loading", version)
	}
	snap := fields["snapshot"].GetStructValue().GetFields()
	perf := snap["performanceMetrics"].GetStructValue().GetFields()

	var alerts []string
	for _, a := range fields["alerts"].GetListValue().GetValues() {
		alerts = append(alerts, a.GetStructValue().GetFields()["id"].GetStringValue())
	}
	alertText := "none"
	if len(alerts) > 0 {
		alertText = strings.Join(alerts, ",")
	}
	return fmt.Sprintf("v%d on-time=%d%% avg=%.1fd delays=%d feedback=%d alerts=%s",
		version,
		int(perf["onTimeRate"].GetNumberValue()),
		perf["avgDeliveryTime"].GetNumberValue(),
		int(perf["shipmentDelays"].GetNumberValue()),
		len(snap["recentFeedback"].GetListValue().GetValues()),
		alertText)
}
