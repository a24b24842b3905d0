package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wopr-network/wopr-go/wopr"
)

func (a *App) newSMSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sms",
		Short: "Send text messages",
	}

	var params wopr.SMSSendParams
	send := &cobra.Command{
		Use:   "send",
		Short: "Send an SMS, or an MMS when --media-url is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return a.fail(err)
			}

			resp, err := client.SMS.Send(cmd.Context(), params)
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				return a.printJSON(resp)
			}
			fmt.Fprintf(a.stdout, "%s %s (%s)\n", resp.SID, resp.Status, resp.Capability)
			return nil
		},
	}
	send.Flags().StringVar(&params.To, "to", "", "Recipient number")
	send.Flags().StringVar(&params.From, "from", "", "Sender number")
	send.Flags().StringVar(&params.Body, "body", "", "Message text")
	send.Flags().StringSliceVar(&params.MediaURLs, "media-url", nil, "Media URL to attach (repeatable)")

	cmd.AddCommand(send)
	return cmd
}

func (a *App) newPhoneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phone",
		Short: "Place calls and manage phone numbers",
	}
	cmd.AddCommand(a.newCallCommand())
	cmd.AddCommand(a.newNumbersCommand())
	return cmd
}

func (a *App) newCallCommand() *cobra.Command {
	var params wopr.PhoneCallParams

	cmd := &cobra.Command{
		Use:   "call",
		Short: "Place an outbound call",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return a.fail(err)
			}

			resp, err := client.Phone.Call(cmd.Context(), params)
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				return a.printJSON(resp)
			}
			fmt.Fprintf(a.stdout, "%s: %s\n", resp.Status, resp.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&params.To, "to", "", "Number to call")
	cmd.Flags().StringVar(&params.From, "from", "", "Caller number")
	cmd.Flags().StringVar(&params.WebhookURL, "webhook-url", "", "URL notified of call events")
	return cmd
}

func (a *App) newNumbersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "numbers",
		Short: "Manage provisioned phone numbers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List phone numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return a.fail(err)
			}

			list, err := client.Phone.Numbers.List(cmd.Context())
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				return a.printJSON(list)
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNUMBER\tNAME\tSMS\tVOICE\tMMS")
			for _, n := range list.Data {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\t%t\n", n.ID, n.PhoneNumber, n.FriendlyName,
					n.Capabilities.SMS, n.Capabilities.Voice, n.Capabilities.MMS)
			}
			return tw.Flush()
		},
	})

	var (
		params          wopr.PhoneNumberProvisionParams
		sms, voice, mms bool
	)
	provision := &cobra.Command{
		Use:   "provision",
		Short: "Provision a new phone number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return a.fail(err)
			}

			caps := &wopr.CapabilitiesRequest{}
			if cmd.Flags().Changed("sms") {
				caps.SMS = wopr.Ptr(sms)
			}
			if cmd.Flags().Changed("voice") {
				caps.Voice = wopr.Ptr(voice)
			}
			if cmd.Flags().Changed("mms") {
				caps.MMS = wopr.Ptr(mms)
			}
			if caps.SMS != nil || caps.Voice != nil || caps.MMS != nil {
				params.Capabilities = caps
			}

			num, err := client.Phone.Numbers.Provision(cmd.Context(), params)
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				return a.printJSON(num)
			}
			fmt.Fprintf(a.stdout, "%s %s\n", num.ID, num.PhoneNumber)
			return nil
		},
	}
	provision.Flags().StringVar(&params.AreaCode, "area-code", "", "Preferred area code")
	provision.Flags().StringVar(&params.Country, "country", wopr.DefaultCountry, "Country code")
	provision.Flags().BoolVar(&sms, "sms", false, "Require SMS")
	provision.Flags().BoolVar(&voice, "voice", false, "Require voice")
	provision.Flags().BoolVar(&mms, "mms", false, "Require MMS")
	cmd.AddCommand(provision)

	cmd.AddCommand(&cobra.Command{
		Use:   "release <id>",
		Short: "Release a phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return a.fail(err)
			}

			resp, err := client.Phone.Numbers.Release(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				return a.printJSON(resp)
			}
			fmt.Fprintf(a.stdout, "%s %s\n", resp.ID, resp.Status)
			return nil
		},
	})

	return cmd
}
