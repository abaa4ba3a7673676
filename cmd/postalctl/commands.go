package main

import (
	"fmt"
	"io"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/services"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var (
	city, state, pincode string
	senderCity           string
	senderState          string
	receiverCity         string
	receiverState        string

	priority, traffic, weather string
)

var scoreCmd = &cobra.Command{
	Use:   "score <address>",
	Short: "Score an address for completeness",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scored, err := newApp().booking().Score(cmd.Context(), domain.AddressInput{
			Raw: args[0], City: city, State: state, Pincode: pincode,
		})
		if err != nil {
			return err
		}
		printScored(cmd.OutOrStdout(), "address", scored)
		return nil
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <sender address> <receiver address>",
	Short: "Rank post offices for a booking",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := newApp().booking().Recommend(cmd.Context(), services.QuoteRequest{
			Sender:   domain.AddressInput{Raw: args[0], City: senderCity, State: senderState},
			Receiver: domain.AddressInput{Raw: args[1], City: receiverCity, State: receiverState},
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printScored(out, "sender", q.Sender)
		printScored(out, "receiver", q.Receiver)
		fmt.Fprintln(out)
		printCandidates(out, q.Recommendation)
		return nil
	},
}

var trackCmd = &cobra.Command{
	Use:   "track <tracking id>",
	Short: "Simulate the status of a parcel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newApp().tracker().Status(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s\n", st.TrackingID, st.CurrentStatus)
		fmt.Fprintf(out, "  %s\n", st.StatusDescription)
		fmt.Fprintf(out, "  eta %s %s (%d%% confidence)\n", st.ETA.Date.Format(time.DateOnly), st.ETA.Time, st.ETA.Confidence)
		fmt.Fprintf(out, "  delay risk %s: %s\n", st.DelayRisk.Level, st.DelayRisk.Reason)
		fmt.Fprintf(out, "  %.1f km to go\n\n", st.RemainingDistanceKm)

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, ev := range st.Timeline {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", ev.Timestamp.Format(time.DateTime), ev.Status, ev.Location)
		}
		return tw.Flush()
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict <source address> <destination address>",
	Short: "Predict a delivery ETA",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newApp().predictor()
		if err != nil {
			return err
		}
		eta, err := p.Predict(cmd.Context(), domain.PredictionRequest{
			SourceAddress:      args[0],
			DestinationAddress: args[1],
			Priority:           domain.Priority(priority),
			TrafficLevel:       traffic,
			WeatherCondition:   weather,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "eta       %s (%s)\n", eta.PredictedETA.Format(time.RFC3339), eta.Source)
		fmt.Fprintf(out, "hours     %.2f\n", eta.EstimatedHours)
		fmt.Fprintf(out, "distance  %.2f km\n", eta.DistanceKm)
		fmt.Fprintf(out, "risk      %s\n", eta.RiskLevel)
		fmt.Fprintf(out, "interval  %.0f-%.0f\n", eta.ConfidenceInterval.Lower, eta.ConfidenceInterval.Upper)
		fmt.Fprintf(out, "%s\n", eta.Explanation)
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringVar(&city, "city", "", "city override")
	scoreCmd.Flags().StringVar(&state, "state", "", "state override")
	scoreCmd.Flags().StringVar(&pincode, "pincode", "", "pincode override")

	recommendCmd.Flags().StringVar(&senderCity, "sender-city", "", "sender city override")
	recommendCmd.Flags().StringVar(&senderState, "sender-state", "", "sender state override")
	recommendCmd.Flags().StringVar(&receiverCity, "receiver-city", "", "receiver city override")
	recommendCmd.Flags().StringVar(&receiverState, "receiver-state", "", "receiver state override")

	predictCmd.Flags().StringVar(&priority, "priority", string(domain.PriorityNormal), "Normal or Express")
	predictCmd.Flags().StringVar(&traffic, "traffic", "Low", strings.Join(domain.TrafficLevels, ", "))
	predictCmd.Flags().StringVar(&weather, "weather", "Clear", strings.Join(domain.WeatherConditions, ", "))
}

func printScored(w io.Writer, label string, s domain.ScoredAddress) {
	fmt.Fprintf(w, "%-9s %s\n", label, s.Address.Standardized)
	fmt.Fprintf(w, "          confidence %d (%s)\n", s.Assessment.Score, s.Assessment.Level)
	for _, sug := range s.Assessment.Suggestions {
		fmt.Fprintf(w, "          - %s\n", sug)
	}
}

func printCandidates(w io.Writer, rec *domain.Recommendation) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tNAME\tSCORE\tDISTANCE\tDELIVERY")

	all := append([]domain.PostOfficeCandidate{rec.Recommended}, rec.Alternatives...)
	for i, c := range all {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.1f km\t%s (%s)\n",
			i+1, c.ID, c.Name, c.AIScore, c.DistanceFromSenderKm,
			c.EstimatedDelivery.Date.Format(time.DateOnly), c.EstimatedDelivery.Range)
	}
	_ = tw.Flush()
}
